// Origin Gatewayのエントリポイント。
// Origin Identity Providerへのリクエストを中継し、結果を共通のJSONエンベロープで返す。
// ORIGIN_CLIENT_ID が未設定の場合はポートをバインドせずに終了コード1で終了する。
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/nao1215/origin-gateway/internal/gateway"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}

// run は設定を読み込み、Identity Providerを生成してHTTPサーバーを起動する。
func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	auth, err := gateway.NewProvider(ctx, cfg)
	if err != nil {
		return err
	}

	server := gateway.NewServer(cfg, auth)

	log.Printf("Gatewayサービスを起動します: :%s", cfg.Port)
	log.Printf("クライアントID設定済み: environment=%s", auth.Environment())
	log.Printf("コールバックURL: %s", auth.RedirectURI())
	log.Printf("ヘルスチェック: http://localhost:%s/health", cfg.Port)
	return server.Run()
}

// loadConfig はカレントディレクトリの.envを読み込んでから環境変数の設定を読む。
// .envが無い場合は環境変数のみを使う。既に設定済みの環境変数は.envで上書きしない。
func loadConfig() (gateway.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return gateway.Config{}, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}
	return gateway.LoadConfig()
}
