package origin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/nao1215/origin-gateway/pkg/httpclient"
)

// Environment はOriginのデプロイ環境。
type Environment string

const (
	// EnvironmentDevelopment は開発環境。
	EnvironmentDevelopment Environment = "development"
	// EnvironmentProduction は本番環境。
	EnvironmentProduction Environment = "production"
)

// defaultDevelopmentBaseURL は開発環境でBaseURLを省略した場合の接続先。
const defaultDevelopmentBaseURL = "http://localhost:8787"

// Config はAuthの生成パラメータ。
type Config struct {
	// ClientID はOriginに登録したクライアントID。必須。
	ClientID string
	// RedirectURI は認証後のコールバックURL。必須。
	RedirectURI string
	// Environment はデプロイ環境。空の場合は development。
	Environment Environment
	// Storage はセッショントークンの保存先。nilの場合はMemoryStorageを使う。
	Storage Storage
	// BaseURL はOrigin APIのベースURL。development では省略できる。
	BaseURL string
	// HTTPClient はAPI呼び出しに使うHTTPクライアント。nilの場合は既定値。
	HTTPClient *http.Client
}

// Auth はOriginに対する認証済みセッションを表すハンドル。
// プロセス起動時に1つ生成し、全リクエストで共有する。
type Auth struct {
	clientID    string
	redirectURI string
	environment Environment
	storage     Storage
	api         *httpclient.Client
}

// New はConfigからAuthを生成する。
func New(cfg Config) (*Auth, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, ErrMissingClientID
	}
	if _, err := url.ParseRequestURI(cfg.RedirectURI); err != nil {
		return nil, fmt.Errorf("リダイレクトURIが不正: %w", err)
	}

	env := cfg.Environment
	if env == "" {
		env = EnvironmentDevelopment
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	switch env {
	case EnvironmentDevelopment:
		if baseURL == "" {
			baseURL = defaultDevelopmentBaseURL
		}
	case EnvironmentProduction:
		if baseURL == "" {
			return nil, errors.New("production環境ではBaseURLの指定が必須")
		}
	default:
		return nil, fmt.Errorf("未知の環境: %q", env)
	}

	storage := cfg.Storage
	if storage == nil {
		storage = NewMemoryStorage()
	}

	opts := []httpclient.Option{
		httpclient.WithHeader("X-Client-ID", cfg.ClientID),
		httpclient.WithHeader("X-Origin-Environment", string(env)),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, httpclient.WithHTTPClient(cfg.HTTPClient))
	}

	return &Auth{
		clientID:    cfg.ClientID,
		redirectURI: cfg.RedirectURI,
		environment: env,
		storage:     storage,
		api:         httpclient.New(baseURL, opts...),
	}, nil
}

// ClientID はクライアントIDを返す。
func (a *Auth) ClientID() string { return a.clientID }

// RedirectURI はコールバックURLを返す。
func (a *Auth) RedirectURI() string { return a.redirectURI }

// Environment はデプロイ環境を返す。
func (a *Auth) Environment() Environment { return a.environment }

// SetAccessToken はセッションのアクセストークンを保存する。
// 有効期限はJWTのexpクレームから求め、読み取れない場合は無期限として扱う。
func (a *Auth) SetAccessToken(ctx context.Context, accessToken string) error {
	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Expiry:      expiryOf(accessToken),
	}
	if err := a.storage.SetToken(ctx, token); err != nil {
		return fmt.Errorf("トークンの保存に失敗: %w", err)
	}
	return nil
}

// IsAuthenticated は有効なセッショントークンが保存されているかを返す。
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	_, err := a.token(ctx)
	return err == nil
}

// token は有効なトークンを返す。無い場合や期限切れの場合はErrNotAuthenticated。
func (a *Auth) token(ctx context.Context) (*oauth2.Token, error) {
	token, err := a.storage.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("トークンの取得に失敗: %w", err)
	}
	if token == nil {
		return nil, ErrNotAuthenticated
	}
	if token.Expiry.IsZero() {
		token.Expiry = expiryOf(token.AccessToken)
	}
	if !token.Valid() {
		return nil, ErrNotAuthenticated
	}
	return token, nil
}

// session は認証済みのAPIセッションを生成する。
func (a *Auth) session(ctx context.Context) (*session, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return &session{api: a.api, accessToken: token.AccessToken}, nil
}

// GetLinkedSocials は現在のセッションに連携済みのソーシャルアカウントを返す。
func (a *Auth) GetLinkedSocials(ctx context.Context) (LinkedSocials, error) {
	s, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	return getData[LinkedSocials](ctx, s, "/auth/socials", nil)
}

// GetTwitterClient はTwitter用クライアントを返す。
func (a *Auth) GetTwitterClient(ctx context.Context) (TwitterClient, error) {
	s, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	return &twitterClient{session: s}, nil
}

// GetSpotifyClient はSpotify用クライアントを返す。
func (a *Auth) GetSpotifyClient(ctx context.Context) (SpotifyClient, error) {
	s, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	return &spotifyClient{session: s}, nil
}

// GetTikTokClient はTikTok用クライアントを返す。
func (a *Auth) GetTikTokClient(ctx context.Context) (TikTokClient, error) {
	s, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	return &tiktokClient{session: s}, nil
}

// expiryOf はJWTのexpクレームから有効期限を読み取る。
// 署名の検証はOrigin側で行うため、ここでは検証しない。
func expiryOf(accessToken string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
