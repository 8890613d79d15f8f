package cart

import (
	"context"
	"sync"

	repo "bambu/internal/repository"
)

// Manager はユーザーIDごとのStoreを管理する。
// 初回アクセス時に永続化済みの行を読み込むので、カートは再起動をまたいで残る。
type Manager struct {
	mu     sync.Mutex
	repo   repo.CartLineRepository
	stores map[int64]*Store
}

func NewManager(r repo.CartLineRepository) *Manager {
	return &Manager{
		repo:   r,
		stores: map[int64]*Store{},
	}
}

// StoreFor はユーザーのStoreを返す（無ければ永続化層から復元して作る）。
func (m *Manager) StoreFor(ctx context.Context, userID int64) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	//ロックの外でDBを読む
	lines, err := m.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	//読み込み中に別リクエストが作っていたらそちらを使う
	if s, ok := m.stores[userID]; ok {
		return s, nil
	}

	s := NewStore(userID, lines, m.repo)
	m.stores[userID] = s
	return s, nil
}
