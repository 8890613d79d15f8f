package repository

import (
	"context"

	"bambu/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//出品者の受注キュー。親注文と配送先をまとめて返す（作成日時の降順）
	ListBySellerID(ctx context.Context, sellerID int64) ([]model.OrderItem, error)
}
