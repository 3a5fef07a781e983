package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/origin-gateway/pkg/httpclient"
	"github.com/nao1215/origin-gateway/pkg/middleware"
	"github.com/nao1215/origin-gateway/pkg/origin"
)

const (
	// defaultPage はツイート取得時のページ番号の既定値。
	defaultPage = 1
	// defaultLimit はツイート取得時の件数の既定値。
	defaultLimit = 10
)

// Server はGatewayの HTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// provider はリクエストの委譲先となるIdentity Provider。
	provider Provider
}

// NewServer は新しいGatewayサーバーを生成する。
// providerはプロセス起動時に1度だけ生成したものを渡す。
func NewServer(cfg Config, provider Provider) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:   router,
		port:     cfg.Port,
		provider: provider,
	}
	s.setupRoutes()

	return s
}

// Handler はルーティング済みのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	})
	s.router.GET("/health", s.handleHealth())

	s.router.GET("/auth/socials", s.handleLinkedSocials())

	twitter := s.router.Group("/twitter")
	{
		twitter.GET("/user/:username", s.handleTwitterUser())
		twitter.GET("/tweets/:username", s.handleTwitterTweets())
	}

	s.router.GET("/spotify/tracks/:spotifyId", s.handleSpotifyTracks())
	s.router.GET("/tiktok/user/:username", s.handleTikTokUser())

	// 未定義のルートもエンベロープ形式で返す
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorEnvelope("not found"))
	})
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Authenticated bool   `json:"authenticated"`
}

// handleHealth はヘルスチェックのハンドラを返す。
// authenticated はIdentity Providerのハンドルが生成済みかどうかを表し、
// セッションの有効性は確認しない。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{
			Status:        "ok",
			Service:       serviceName,
			Authenticated: s.provider != nil,
		})
	}
}

// handleLinkedSocials は連携済みソーシャルアカウントを返すハンドラを返す。
func (s *Server) handleLinkedSocials() gin.HandlerFunc {
	return func(c *gin.Context) {
		delegate(c, func(ctx context.Context) (origin.LinkedSocials, error) {
			return s.provider.GetLinkedSocials(ctx)
		})
	}
}

// handleTwitterUser はTwitterプロフィールを返すハンドラを返す。
func (s *Server) handleTwitterUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		delegate(c, func(ctx context.Context) (origin.TwitterUser, error) {
			twitter, err := s.provider.GetTwitterClient(ctx)
			if err != nil {
				return origin.TwitterUser{}, err
			}
			return twitter.FetchUserByUsername(ctx, username)
		})
	}
}

// handleTwitterTweets はツイート一覧を返すハンドラを返す。
// page と limit が整数として解釈できない場合は400を返し、Providerは呼び出さない。
func (s *Server) handleTwitterTweets() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		page, err := queryInt(c, "page", defaultPage)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorEnvelope(err.Error()))
			return
		}
		limit, err := queryInt(c, "limit", defaultLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorEnvelope(err.Error()))
			return
		}

		delegate(c, func(ctx context.Context) ([]origin.Tweet, error) {
			twitter, err := s.provider.GetTwitterClient(ctx)
			if err != nil {
				return nil, err
			}
			return twitter.FetchTweetsByUsername(ctx, username, page, limit)
		})
	}
}

// handleSpotifyTracks はSpotifyの保存済みトラックを返すハンドラを返す。
func (s *Server) handleSpotifyTracks() gin.HandlerFunc {
	return func(c *gin.Context) {
		spotifyID := c.Param("spotifyId")
		delegate(c, func(ctx context.Context) ([]origin.SpotifyTrack, error) {
			spotify, err := s.provider.GetSpotifyClient(ctx)
			if err != nil {
				return nil, err
			}
			return spotify.FetchSavedTracksByID(ctx, spotifyID)
		})
	}
}

// handleTikTokUser はTikTokプロフィールを返すハンドラを返す。
func (s *Server) handleTikTokUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		delegate(c, func(ctx context.Context) (origin.TikTokUser, error) {
			tiktok, err := s.provider.GetTikTokClient(ctx)
			if err != nil {
				return origin.TikTokUser{}, err
			}
			return tiktok.FetchUserByUsername(ctx, username)
		})
	}
}

// delegate はProviderの呼び出しを1回だけ行い、結果をエンベロープに変換して返す。
// 失敗の種類にかかわらずHTTP 500とエラーメッセージを返す。
// クライアントが切断してもProviderの呼び出しは中断しない。
func delegate[T any](c *gin.Context, call func(ctx context.Context) (T, error)) {
	requestID := middleware.GetRequestID(c)
	ctx := httpclient.WithRequestID(context.WithoutCancel(c.Request.Context()), requestID)

	data, err := call(ctx)
	if err != nil {
		log.Printf("Provider呼び出しエラー: request_id=%s, path=%s, error=%v", requestID, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorEnvelope(err.Error()))
		return
	}
	c.JSON(http.StatusOK, successEnvelope(data))
}

// queryInt はクエリパラメータを整数として取得する。
// パラメータが無いか空の場合はdefaultValueを返す。
func queryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, raw)
	}
	return v, nil
}
