package usecase

import (
	"context"
	"net/http"
	"strings"

	"bambu/internal/cart"
	"bambu/internal/domain/model"
	repo "bambu/internal/repository"
)

// 決済プロバイダの約束（payment intent発行と返金）。
type PaymentIntentIssuer interface {
	CreateIntent(ctx context.Context, amount int64, description string) (string, error)
	Refund(ctx context.Context, paymentIntentID string) error
}

const paymentDescription = "Pagamento Bambu Burguer"

// CheckoutUsecase は購入フローを組み立てる。
// カート→住所→payment intent→（クライアントで決済確定）→注文保存。
type CheckoutUsecase struct {
	carts     *cart.Manager
	addresses repo.AddressRepository
	payments  PaymentIntentIssuer
	tx        repo.TransactionManager

	//固定の配送料（セントス）
	deliveryFee int64
}

func NewCheckoutUsecase(
	carts *cart.Manager,
	addresses repo.AddressRepository,
	payments PaymentIntentIssuer,
	tx repo.TransactionManager,
	deliveryFee int64,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:       carts,
		addresses:   addresses,
		payments:    payments,
		tx:          tx,
		deliveryFee: deliveryFee,
	}
}

type QuoteOutput struct {
	Items       []model.CartLine `json:"items"`
	SubTotal    int64            `json:"sub_total"`
	DeliveryFee int64            `json:"tax_shipping_fee"`
	Total       int64            `json:"total"`
}

// subtotal = Σ price×quantity、total = subtotal + 配送料
func quoteLines(lines []model.CartLine, fee int64) QuoteOutput {
	var subTotal int64
	for _, l := range lines {
		subTotal += l.Price * l.Quantity
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return QuoteOutput{
		Items:       lines,
		SubTotal:    subTotal,
		DeliveryFee: fee,
		Total:       subTotal + fee,
	}
}

// Quote は現在のカートの見積もりを返す。
func (u *CheckoutUsecase) Quote(ctx context.Context, userID int64) (QuoteOutput, error) {
	if userID <= 0 {
		return QuoteOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return QuoteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return quoteLines(s.Items(), u.deliveryFee), nil
}

type CreateIntentInput struct {
	AddressID int64 `json:"address_id"`
}

type CreateIntentOutput struct {
	ClientSecret string `json:"client_secret"`
	SubTotal     int64  `json:"sub_total"`
	DeliveryFee  int64  `json:"tax_shipping_fee"`
	Total        int64  `json:"total"`
}

// CreateIntent は合計金額のpayment intentを発行してclient secretを返す。
// 住所未選択・空カートはここで弾く。失敗してもまだ何も書いていないので、
// ユーザーは最初からやり直せばよい。
func (u *CheckoutUsecase) CreateIntent(ctx context.Context, userID int64, in CreateIntentInput) (CreateIntentOutput, error) {
	if userID <= 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}

	if err := u.checkAddressOwnership(ctx, userID, in.AddressID); err != nil {
		return CreateIntentOutput{}, err
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return CreateIntentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	q := quoteLines(s.Items(), u.deliveryFee)
	if len(q.Items) == 0 {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	secret, err := u.payments.CreateIntent(ctx, q.Total, paymentDescription)
	if err != nil {
		return CreateIntentOutput{}, NewHTTPError(http.StatusBadGateway, "payment intent failed")
	}

	return CreateIntentOutput{
		ClientSecret: secret,
		SubTotal:     q.SubTotal,
		DeliveryFee:  q.DeliveryFee,
		Total:        q.Total,
	}, nil
}

type ConfirmOrderInput struct {
	AddressID int64  `json:"address_id"`
	PaymentID string `json:"payment_id"`
}

// ConfirmOrder は決済確定後に注文を確定する。
// ヘッダと明細は同一トランザクションで書き、成功したらカートを空にする。
// 決済は既に完了しているため、ここで失敗したら「サポートへ連絡」を返すしかない。
func (u *CheckoutUsecase) ConfirmOrder(ctx context.Context, userID int64, in ConfirmOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if strings.TrimSpace(in.PaymentID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "payment_id is required")
	}

	if err := u.checkAddressOwnership(ctx, userID, in.AddressID); err != nil {
		return model.Order{}, err
	}

	s, err := u.carts.StoreFor(ctx, userID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//支払った時点のスナップショットで注文を組む
	lines := s.Items()
	if len(lines) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	q := quoteLines(lines, u.deliveryFee)

	orderItems := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		orderItems = append(orderItems, model.OrderItem{
			SellerID:  l.SellerID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
			Total:     l.Price * l.Quantity,
		})
	}

	var created model.Order

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:     userID,
			AddressID:      in.AddressID,
			SubTotal:       q.SubTotal,
			TaxShippingFee: q.DeliveryFee,
			Total:          q.Total,
			PaymentID:      strings.TrimSpace(in.PaymentID),
			Status:         model.OrderStatusPlaced,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		created = model.Order{
			ID:             orderID,
			CustomerID:     userID,
			AddressID:      in.AddressID,
			SubTotal:       q.SubTotal,
			TaxShippingFee: q.DeliveryFee,
			Total:          q.Total,
			PaymentID:      strings.TrimSpace(in.PaymentID),
			Status:         model.OrderStatusPlaced,
			Items:          orderItems,
		}
		return nil
	})
	if err != nil {
		//決済済みなのに注文が書けなかったケース
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "failed to save order, please contact support")
	}

	s.Clear(ctx)
	return created, nil
}

// 住所の存在と所有を確認（存在しない404・他人の住所403）
func (u *CheckoutUsecase) checkAddressOwnership(ctx context.Context, userID int64, addressID int64) error {
	addr, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}
