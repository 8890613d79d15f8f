package repository

import (
	"context"

	"bambu/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//顧客の注文一覧。明細と住所をまとめて返す（作成日時の降順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	//ガード付きステータス更新。fromに含まれるステータスの行だけを書き換える。
	//対象0行ならErrNotFound（終端ステータスからの遷移はここで弾く）
	UpdateStatusIf(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus) error
}
