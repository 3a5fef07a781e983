package gateway

import (
	"context"
	"fmt"

	"github.com/nao1215/origin-gateway/pkg/origin"
)

// Provider はGatewayが呼び出すIdentity Providerの操作。
// *origin.Auth が実装する。
type Provider interface {
	GetLinkedSocials(ctx context.Context) (origin.LinkedSocials, error)
	GetTwitterClient(ctx context.Context) (origin.TwitterClient, error)
	GetSpotifyClient(ctx context.Context) (origin.SpotifyClient, error)
	GetTikTokClient(ctx context.Context) (origin.TikTokClient, error)
}

var _ Provider = (*origin.Auth)(nil)

// NewProvider は設定からIdentity Providerのハンドルを生成する。
// トークンはメモリ上にのみ保持し、プロセス終了とともに破棄される。
func NewProvider(ctx context.Context, cfg Config) (*origin.Auth, error) {
	auth, err := origin.New(origin.Config{
		ClientID:    cfg.ClientID,
		RedirectURI: cfg.RedirectURI,
		Environment: cfg.Environment,
		Storage:     origin.NewMemoryStorage(),
		BaseURL:     cfg.APIBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("origin.Authの初期化に失敗: %w", err)
	}

	if cfg.AccessToken != "" {
		if err := auth.SetAccessToken(ctx, cfg.AccessToken); err != nil {
			return nil, fmt.Errorf("アクセストークンの設定に失敗: %w", err)
		}
	}
	return auth, nil
}
