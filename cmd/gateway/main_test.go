package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/origin-gateway/internal/gateway"
)

// unsetEnv はテスト終了時に元の値へ戻したうえで環境変数を未設定にする。
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("環境変数%sの削除に失敗: %v", key, err)
		}
	}
}

// writeDotEnv はカレントディレクトリを一時ディレクトリに移し、.envを書き込む。
func writeDotEnv(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf(".envの書き込みに失敗: %v", err)
	}
}

// TestRun は起動処理を検証する。
func TestRun(t *testing.T) {
	t.Run("ORIGIN_CLIENT_IDが無い場合はサーバーを起動せずにエラーを返す", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORIGIN_CLIENT_ID", "")

		err := run(context.Background())
		if !errors.Is(err, gateway.ErrMissingClientID) {
			t.Errorf("err: got %v, want %v", err, gateway.ErrMissingClientID)
		}
	})

	t.Run(".envが不正な形式の場合はエラーを返す", func(t *testing.T) {
		writeDotEnv(t, "ORIGIN_CLIENT_ID='unterminated\n")
		unsetEnv(t, "ORIGIN_CLIENT_ID")

		err := run(context.Background())
		if err == nil {
			t.Fatal("run()がエラーを返すべきだが、nilが返った")
		}
		if errors.Is(err, gateway.ErrMissingClientID) {
			t.Errorf("err: got %v, want .envの読み込みエラー", err)
		}
	})
}

// TestLoadConfig は.envと環境変数からの設定読み込みを検証する。
func TestLoadConfig(t *testing.T) {
	t.Run(".envからクライアントIDとポートを読み込む", func(t *testing.T) {
		writeDotEnv(t, "ORIGIN_CLIENT_ID=client-from-dotenv\nPORT=6001\n")
		unsetEnv(t, "ORIGIN_CLIENT_ID", "PORT")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig()でエラーが発生: %v", err)
		}
		if cfg.ClientID != "client-from-dotenv" {
			t.Errorf("ClientID: got %q, want %q", cfg.ClientID, "client-from-dotenv")
		}
		if cfg.Port != "6001" {
			t.Errorf("Port: got %q, want %q", cfg.Port, "6001")
		}
	})

	t.Run("設定済みの環境変数は.envより優先する", func(t *testing.T) {
		writeDotEnv(t, "ORIGIN_CLIENT_ID=client-from-dotenv\n")
		t.Setenv("ORIGIN_CLIENT_ID", "client-from-env")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig()でエラーが発生: %v", err)
		}
		if cfg.ClientID != "client-from-env" {
			t.Errorf("ClientID: got %q, want %q", cfg.ClientID, "client-from-env")
		}
	})

	t.Run(".envが無い場合は環境変数だけで読み込む", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("ORIGIN_CLIENT_ID", "client-from-env")

		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig()でエラーが発生: %v", err)
		}
		if cfg.ClientID != "client-from-env" {
			t.Errorf("ClientID: got %q, want %q", cfg.ClientID, "client-from-env")
		}
	})
}
