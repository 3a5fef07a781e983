package gateway

import (
	"errors"
	"os"
	"strings"

	"github.com/nao1215/origin-gateway/pkg/origin"
)

const (
	// defaultPort はPORTが未設定の場合のリッスンポート。
	defaultPort = "5000"
	// callbackURL はOriginに登録するコールバックURL。
	callbackURL = "http://localhost:8000/callback"
	// serviceName はヘルスチェックで返すサービス名。
	serviceName = "origin-gateway"
)

// ErrMissingClientID はORIGIN_CLIENT_IDが設定されていないことを表す。
var ErrMissingClientID = errors.New("ORIGIN_CLIENT_ID is not set")

// Config はGatewayの起動設定。
type Config struct {
	// Port はリッスンポート。
	Port string
	// ClientID はOriginのクライアントID。
	ClientID string
	// RedirectURI はOriginのコールバックURL。
	RedirectURI string
	// Environment はOriginのデプロイ環境。
	Environment origin.Environment
	// APIBaseURL はOrigin APIのベースURL。空の場合は環境の既定値。
	APIBaseURL string
	// AccessToken は起動時にメモリ上のセッションへ設定するアクセストークン。
	AccessToken string
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
}

// LoadConfig は環境変数から設定を読み込む。
// ORIGIN_CLIENT_ID が無い場合はErrMissingClientIDを返す。
func LoadConfig() (Config, error) {
	clientID := strings.TrimSpace(os.Getenv("ORIGIN_CLIENT_ID"))
	if clientID == "" {
		return Config{}, ErrMissingClientID
	}

	return Config{
		Port:           getEnvOr("PORT", defaultPort),
		ClientID:       clientID,
		RedirectURI:    callbackURL,
		Environment:    origin.EnvironmentDevelopment,
		APIBaseURL:     os.Getenv("ORIGIN_API_URL"),
		AccessToken:    os.Getenv("ORIGIN_ACCESS_TOKEN"),
		AllowedOrigins: splitList(getEnvOr("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// splitList はカンマ区切りの文字列を分割し、空要素を取り除く。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
