package usecase

import (
	"context"
	"net/http"

	"bambu/internal/cart"
	"bambu/internal/domain/model"
	repo "bambu/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// 状態はcart.Storeが持ち、ここでは商品の解決とDTO詰め替えだけを行う。
type CartUsecase struct {
	carts       *cart.Manager
	productRepo repo.ProductRepository
}

func NewCartUsecase(carts *cart.Manager, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items    []model.CartLine `json:"items"`
	SubTotal int64            `json:"sub_total"`
}

func toCartResponse(lines []model.CartLine) CartResponse {
	var subTotal int64
	for _, l := range lines {
		subTotal += l.Price * l.Quantity
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return CartResponse{Items: lines, SubTotal: subTotal}
}

func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toCartResponse(s.Items()), nil
}

// AddToCart は商品をカートへ入れる（同一商品は数量+1）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s.AddProduct(ctx, p)
	return toCartResponse(s.Items()), nil
}

// UpdateQuantity は数量をmax(1, quantity)へ。行が無ければ何もしない。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, productID int64, quantity int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s.UpdateQuantity(ctx, productID, quantity)
	return toCartResponse(s.Items()), nil
}

// DecrementFromCart は数量を1減らす（1だったら行ごと削除）。
func (u *CartUsecase) DecrementFromCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s.Decrement(ctx, productID)
	return toCartResponse(s.Items()), nil
}

func (u *CartUsecase) DeleteFromCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s.DeleteProduct(ctx, productID)
	return toCartResponse(s.Items()), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s.Clear(ctx)
	return toCartResponse(s.Items()), nil
}
