package origin

import (
	"encoding/json"
	"reflect"
	"strings"
)

// LinkedSocials はプラットフォーム名から連携状態への対応。
// 例: {"twitter": true, "spotify": false, "tiktok": true}
// 値はOriginが返したものをそのまま保持する。
type LinkedSocials map[string]any

// IsLinked は指定したプラットフォームが連携済みかを返す。
func (l LinkedSocials) IsLinked(platform string) bool {
	linked, ok := l[platform].(bool)
	return ok && linked
}

// Extra は型で定義していないフィールドを保持する。
// エンコード時に定義済みフィールドと合わせて出力し、Originの応答を欠落なく中継する。
type Extra map[string]json.RawMessage

// TwitterUser はTwitterのユーザープロフィール。
type TwitterUser struct {
	ID              string                `json:"id"`
	Username        string                `json:"username,omitempty"`
	Name            string                `json:"name,omitempty"`
	Description     string                `json:"description,omitempty"`
	ProfileImageURL string                `json:"profile_image_url,omitempty"`
	Verified        bool                  `json:"verified,omitempty"`
	CreatedAt       string                `json:"created_at,omitempty"`
	PublicMetrics   *TwitterPublicMetrics `json:"public_metrics,omitempty"`
	Extra           Extra                 `json:"-"`
}

// TwitterPublicMetrics はTwitterユーザーの公開指標。
type TwitterPublicMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

// Tweet はツイート1件。
type Tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	AuthorID  string `json:"author_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Extra     Extra  `json:"-"`
}

// SpotifyTrack はSpotifyの保存済みトラック。
type SpotifyTrack struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Artists    []string `json:"artists,omitempty"`
	Album      string   `json:"album,omitempty"`
	DurationMS int      `json:"duration_ms,omitempty"`
	AddedAt    string   `json:"added_at,omitempty"`
	Extra      Extra    `json:"-"`
}

// TikTokUser はTikTokのユーザープロフィール。
type TikTokUser struct {
	ID            string `json:"id,omitempty"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	FollowerCount int    `json:"follower_count,omitempty"`
	VideoCount    int    `json:"video_count,omitempty"`
	Extra         Extra  `json:"-"`
}

// 以下はメソッドを持たない同じ形の型。再帰せずに標準のエンコードを使うために用いる。
type (
	twitterUserFields  TwitterUser
	tweetFields        Tweet
	spotifyTrackFields SpotifyTrack
	tiktokUserFields   TikTokUser
)

// UnmarshalJSON は定義済みフィールドを読み込み、残りをExtraに保持する。
func (u *TwitterUser) UnmarshalJSON(b []byte) error {
	extra, err := decodeWithExtra(b, (*twitterUserFields)(u))
	if err != nil {
		return err
	}
	u.Extra = extra
	return nil
}

// MarshalJSON は定義済みフィールドとExtraを合わせて出力する。
func (u TwitterUser) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(twitterUserFields(u), u.Extra)
}

// UnmarshalJSON は定義済みフィールドを読み込み、残りをExtraに保持する。
func (t *Tweet) UnmarshalJSON(b []byte) error {
	extra, err := decodeWithExtra(b, (*tweetFields)(t))
	if err != nil {
		return err
	}
	t.Extra = extra
	return nil
}

// MarshalJSON は定義済みフィールドとExtraを合わせて出力する。
func (t Tweet) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(tweetFields(t), t.Extra)
}

// UnmarshalJSON は定義済みフィールドを読み込み、残りをExtraに保持する。
func (s *SpotifyTrack) UnmarshalJSON(b []byte) error {
	extra, err := decodeWithExtra(b, (*spotifyTrackFields)(s))
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}

// MarshalJSON は定義済みフィールドとExtraを合わせて出力する。
func (s SpotifyTrack) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(spotifyTrackFields(s), s.Extra)
}

// UnmarshalJSON は定義済みフィールドを読み込み、残りをExtraに保持する。
func (u *TikTokUser) UnmarshalJSON(b []byte) error {
	extra, err := decodeWithExtra(b, (*tiktokUserFields)(u))
	if err != nil {
		return err
	}
	u.Extra = extra
	return nil
}

// MarshalJSON は定義済みフィールドとExtraを合わせて出力する。
func (u TikTokUser) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(tiktokUserFields(u), u.Extra)
}

// decodeWithExtra はbをknownに読み込み、knownのフィールドに対応しないキーを返す。
func decodeWithExtra(b []byte, known any) (Extra, error) {
	if err := json.Unmarshal(b, known); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for key := range jsonKeys(reflect.TypeOf(known).Elem()) {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// encodeWithExtra はknownを出力し、knownに無いキーをextraから補って返す。
func encodeWithExtra(known any, extra Extra) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// jsonKeys は構造体のjsonタグ名の集合を返す。"-" のフィールドは含めない。
func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}
