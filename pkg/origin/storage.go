package origin

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// Storage はセッショントークンの保存先。
// トークンが保存されていない場合、GetTokenは (nil, nil) を返す。
// SetTokenにnilを渡すと保存済みトークンを削除する。
type Storage interface {
	GetToken(ctx context.Context) (*oauth2.Token, error)
	SetToken(ctx context.Context, token *oauth2.Token) error
}

// MemoryStorage はプロセス内メモリにトークンを保持するStorage。
// プロセス終了とともにトークンは破棄される。
type MemoryStorage struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage は空のMemoryStorageを生成する。
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// GetToken は保存済みトークンのコピーを返す。
func (m *MemoryStorage) GetToken(_ context.Context) (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == nil {
		return nil, nil
	}
	copied := *m.token
	return &copied, nil
}

// SetToken はトークンを保存する。nilを渡した場合は削除と同じ。
func (m *MemoryStorage) SetToken(_ context.Context, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == nil {
		m.token = nil
		return nil
	}
	copied := *token
	m.token = &copied
	return nil
}
