package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bambu/internal/domain/model"
	"bambu/internal/imaging"
	repo "bambu/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 商品画像の保管先。
type ImageStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	PublicURL(key string) string
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	images      ImageStore
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, images ImageStore) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		images:      images,
	}
}

type ProductInput struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	AvailableStock int64    `json:"available_stock"`
	Images         []string `json:"images"`
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.AvailableStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "available_stock must be >= 0")
	}
	return nil
}

// 公開一覧（買い手向けの商品タイル）
func (u *ProductUsecase) ListPublicProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListPublic(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 出品者の商品一覧
func (u *ProductUsecase) ListSellerProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	if sellerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.productRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID int64, in ProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		SellerID:       sellerID,
		Name:           strings.TrimSpace(in.Name),
		Category:       strings.TrimSpace(in.Category),
		Description:    in.Description,
		Price:          in.Price,
		AvailableStock: in.AvailableStock,
		Images:         in.Images,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 更新は所有者のみ（他人の商品は404扱い）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID int64, productID int64, in ProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	existing, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Category = strings.TrimSpace(in.Category)
	existing.Description = in.Description
	existing.Price = in.Price
	existing.AvailableStock = in.AvailableStock
	existing.Images = in.Images

	if err := u.productRepo.Update(ctx, existing); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return existing, nil
}

// 削除は所有者のみ。過去の注文明細（スナップショット）には影響しない
func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID int64, productID int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	existing, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.SellerID != sellerID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// UploadImage は画像を縮小してからストレージへ置き、公開URLを返す。
// 縮小はベストエフォート（失敗したら元データをそのまま上げる）。
// キーは元ファイル名＋タイムスタンプで衝突を避ける。
func (u *ProductUsecase) UploadImage(ctx context.Context, sellerID int64, filename string, contentType string, data []byte) (string, error) {
	if sellerID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(data) == 0 {
		return "", NewHTTPError(http.StatusBadRequest, "empty file")
	}

	resized := imaging.Fit(data)

	key := fmt.Sprintf("%s-%d", strings.TrimSpace(filename), time.Now().UnixNano())
	if err := u.images.Upload(ctx, key, contentType, resized); err != nil {
		return "", NewHTTPError(http.StatusBadGateway, "upload failed")
	}

	return u.images.PublicURL(key), nil
}
