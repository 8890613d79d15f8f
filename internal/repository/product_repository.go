package repository

import (
	"context"
	"errors"

	"bambu/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開一覧（全出品者、作成日時の降順）
	ListPublic(ctx context.Context) ([]model.Product, error)

	//出品者の商品一覧（作成日時の降順）
	ListBySellerID(ctx context.Context, sellerID int64) ([]model.Product, error)

	FindByID(ctx context.Context, productID int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, productID int64) error
}
