package origin

import (
	"context"
	"net/url"
	"strconv"
)

// TwitterClient はTwitterのデータ取得を行うクライアント。
type TwitterClient interface {
	FetchUserByUsername(ctx context.Context, username string) (TwitterUser, error)
	FetchTweetsByUsername(ctx context.Context, username string, page, limit int) ([]Tweet, error)
}

// SpotifyClient はSpotifyのデータ取得を行うクライアント。
type SpotifyClient interface {
	FetchSavedTracksByID(ctx context.Context, spotifyID string) ([]SpotifyTrack, error)
}

// TikTokClient はTikTokのデータ取得を行うクライアント。
type TikTokClient interface {
	FetchUserByUsername(ctx context.Context, username string) (TikTokUser, error)
}

type twitterClient struct {
	session *session
}

// FetchUserByUsername はユーザー名からTwitterプロフィールを取得する。
func (c *twitterClient) FetchUserByUsername(ctx context.Context, username string) (TwitterUser, error) {
	return getData[TwitterUser](ctx, c.session, "/twitter/users/"+url.PathEscape(username), nil)
}

// FetchTweetsByUsername はユーザー名からツイート一覧をページ単位で取得する。
func (c *twitterClient) FetchTweetsByUsername(ctx context.Context, username string, page, limit int) ([]Tweet, error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	return getData[[]Tweet](ctx, c.session, "/twitter/users/"+url.PathEscape(username)+"/tweets", query)
}

type spotifyClient struct {
	session *session
}

// FetchSavedTracksByID はSpotifyユーザーIDから保存済みトラックを取得する。
func (c *spotifyClient) FetchSavedTracksByID(ctx context.Context, spotifyID string) ([]SpotifyTrack, error) {
	return getData[[]SpotifyTrack](ctx, c.session, "/spotify/users/"+url.PathEscape(spotifyID)+"/saved-tracks", nil)
}

type tiktokClient struct {
	session *session
}

// FetchUserByUsername はユーザー名からTikTokプロフィールを取得する。
func (c *tiktokClient) FetchUserByUsername(ctx context.Context, username string) (TikTokUser, error) {
	return getData[TikTokUser](ctx, c.session, "/tiktok/users/"+url.PathEscape(username), nil)
}
