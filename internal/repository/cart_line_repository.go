package repository

import (
	"context"

	"bambu/internal/domain/model"
)

// カート行の永続化。スナップショット全置き換えのみ（部分更新なし）。
type CartLineRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)

	//ユーザーのカート行を丸ごと差し替える（last-writer-wins）
	ReplaceForUser(ctx context.Context, userID int64, lines []model.CartLine) error
}
