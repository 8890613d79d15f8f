package cart

import (
	"context"
	"sync"

	"bambu/internal/domain/model"

	"github.com/google/uuid"
)

// Persister はカートのスナップショットを永続化する約束。
// last-writer-wins。失敗してもカート操作自体は失敗しない
type Persister interface {
	ReplaceForUser(ctx context.Context, userID int64, lines []model.CartLine) error
}

// Store は1ユーザー分のカート。
// すべての変更はコレクション丸ごと差し替えで行い、変更のたびに
// 永続化と購読者への通知を同期的に行う。
//
// 不変条件:
//   - 同じproduct_idの行は最大1つ
//   - quantityは常に1以上
type Store struct {
	mu     sync.Mutex
	userID int64
	lines  []model.CartLine

	persister Persister

	subs    map[int]func([]model.CartLine)
	nextSub int
}

func NewStore(userID int64, initial []model.CartLine, persister Persister) *Store {
	lines := make([]model.CartLine, len(initial))
	copy(lines, initial)

	return &Store{
		userID:    userID,
		lines:     lines,
		persister: persister,
		subs:      map[int]func([]model.CartLine){},
	}
}

// AddProduct は商品をカートに入れる。
// 既存行があればquantity+1、無ければquantity=1の新しい行を追加する。
func (s *Store) AddProduct(ctx context.Context, p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.CartLine, len(s.lines))
	copy(next, s.lines)

	found := false
	for i := range next {
		if next[i].ProductID == p.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		next = append(next, model.CartLine{
			ID:        uuid.NewString(),
			UserID:    s.userID,
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  1,
			Image:     p.FirstImage(),
		})
	}

	s.replace(ctx, next)
}

// UpdateQuantity は数量をmax(1, quantity)に設定する。行が無ければ何もしない。
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	if quantity < 1 {
		quantity = 1
	}

	next := make([]model.CartLine, len(s.lines))
	copy(next, s.lines)
	next[idx].Quantity = quantity

	s.replace(ctx, next)
}

// Decrement は数量を1減らす。quantity==1の行は丸ごと取り除く
// （quantity=0の行は決して残さない）。行が無ければ何もしない。
func (s *Store) Decrement(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	if s.lines[idx].Quantity <= 1 {
		next := make([]model.CartLine, 0, len(s.lines)-1)
		next = append(next, s.lines[:idx]...)
		next = append(next, s.lines[idx+1:]...)
		s.replace(ctx, next)
		return
	}

	next := make([]model.CartLine, len(s.lines))
	copy(next, s.lines)
	next[idx].Quantity--
	s.replace(ctx, next)
}

// DeleteProduct は商品の行をカートから取り除く。
func (s *Store) DeleteProduct(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.CartLine, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ProductID != productID {
			next = append(next, l)
		}
	}

	s.replace(ctx, next)
}

// Clear はカートを空にする。
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(ctx, []model.CartLine{})
}

// Items は現在のスナップショットのコピーを返す。
func (s *Store) Items() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subscribe は購読者を登録する。
// 変更のたびにfnへ新しいスナップショット全体が渡る。戻り値で購読解除。
func (s *Store) Subscribe(fn func([]model.CartLine)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// replace はスナップショットを差し替えて、永続化→通知の順で反映する。
// 呼び出し側がmuを持っていること。
func (s *Store) replace(ctx context.Context, next []model.CartLine) {
	s.lines = next

	if s.persister != nil {
		//永続化はベストエフォート（last-writer-wins）
		_ = s.persister.ReplaceForUser(ctx, s.userID, next)
	}

	for _, fn := range s.subs {
		snapshot := make([]model.CartLine, len(next))
		copy(snapshot, next)
		fn(snapshot)
	}
}
