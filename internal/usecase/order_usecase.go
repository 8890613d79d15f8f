package usecase

import (
	"context"
	"net/http"
	"time"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"
)

// OrderUsecase は注文の読み取りとステータス遷移を担当する。
// order_statusを作成後に書き換えるのはここだけ。
type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   PaymentIntentIssuer
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	payments PaymentIntentIssuer,
) *OrderUsecase {
	return &OrderUsecase{
		orders:     orders,
		orderItems: orderItems,
		payments:   payments,
	}
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	SellerID  int64  `json:"seller_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Total     int64  `json:"total"`
	Image     string `json:"image"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	Status         string            `json:"order_status"`
	SubTotal       int64             `json:"sub_total"`
	TaxShippingFee int64             `json:"tax_shipping_fee"`
	Total          int64             `json:"total"`
	PaymentID      string            `json:"payment_id"`
	CreatedAt      time.Time         `json:"created_at"`
	Address        model.Address     `json:"addresses"`
	Items          []OrderItemOutput `json:"order_items"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ProductID: it.ProductID,
			SellerID:  it.SellerID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
			Image:     it.Image,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		Status:         string(o.Status),
		SubTotal:       o.SubTotal,
		TaxShippingFee: o.TaxShippingFee,
		Total:          o.Total,
		PaymentID:      o.PaymentID,
		CreatedAt:      o.CreatedAt,
		Address:        o.Address,
		Items:          items,
	}
}

// 出品者の受注キューの1行（明細＋親注文＋配送先）
type SellerOrderItemOutput struct {
	ID          int64         `json:"id"`
	OrderID     int64         `json:"order_id"`
	OrderStatus string        `json:"order_status"`
	ProductID   int64         `json:"product_id"`
	Name        string        `json:"name"`
	Price       int64         `json:"price"`
	Quantity    int64         `json:"quantity"`
	Total       int64         `json:"total"`
	Image       string        `json:"image"`
	CreatedAt   time.Time     `json:"created_at"`
	Address     model.Address `json:"addresses"`
}

// ListMyOrders は顧客の注文一覧（新しい順、明細と住所つき）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs, nil
}

// ListSellerQueue は出品者の受注明細一覧。
// 1つの注文が複数出品者をまたぐので、自分の明細だけが並ぶ。
func (u *OrderUsecase) ListSellerQueue(ctx context.Context, sellerID int64) ([]SellerOrderItemOutput, error) {
	if sellerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.orderItems.ListBySellerID(ctx, sellerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]SellerOrderItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, SellerOrderItemOutput{
			ID:          it.ID,
			OrderID:     it.OrderID,
			OrderStatus: string(it.Order.Status),
			ProductID:   it.ProductID,
			Name:        it.Name,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Total:       it.Total,
			Image:       it.Image,
			CreatedAt:   it.CreatedAt,
			Address:     it.Order.Address,
		})
	}
	return outs, nil
}

// Cancel は注文をキャンセルし、保存済みのpayment intentへ全額返金を出す。
// ステータス更新はガード付き（アクティブ以外からは409）。
// 返金が失敗した場合、注文はcancelledのまま残りエラーだけ返す（巻き戻さない）。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.CustomerID != userID {
		//他人の注文は「存在しない扱い」にする
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.orders.UpdateStatusIf(ctx, orderID, model.ActiveOrderStatuses(), model.OrderStatusCancelled)
	if err == repo.ErrNotFound {
		//既にdelivered/cancelled
		return NewHTTPError(http.StatusConflict, "order is not active")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.payments.Refund(ctx, o.PaymentID); err != nil {
		return NewHTTPError(http.StatusBadGateway, "order cancelled but refund failed, please contact support")
	}
	return nil
}

// MarkDelivered は出品者が配達完了を記録する。
// 自分の明細を含む注文だけ。ガード付き遷移（アクティブ以外からは409）。
func (u *OrderUsecase) MarkDelivered(ctx context.Context, sellerID int64, orderID int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	items, err := u.orderItems.ListByOrderID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	mine := false
	for _, it := range items {
		if it.SellerID == sellerID {
			mine = true
			break
		}
	}
	if !mine {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.orders.UpdateStatusIf(ctx, orderID, model.ActiveOrderStatuses(), model.OrderStatusDelivered)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusConflict, "order is not active")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
