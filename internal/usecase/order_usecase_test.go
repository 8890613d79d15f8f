package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrdOrderRepoMock struct{ mock.Mock }

func (m *OrdOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrdOrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrdOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrdOrderRepoMock) UpdateStatusIf(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

type OrdOrderItemRepoMock struct{ mock.Mock }

func (m *OrdOrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrdOrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrdOrderItemRepoMock) ListBySellerID(ctx context.Context, sellerID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, sellerID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// =====================
// ListMyOrders / ListSellerQueue
// =====================

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{
			ID:             77,
			CustomerID:     1,
			SubTotal:       2550,
			TaxShippingFee: 400,
			Total:          2950,
			PaymentID:      "pi_123",
			Status:         model.OrderStatusPlaced,
			CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Address:        model.Address{ID: 30, UserID: 1, Name: "Casa"},
			Items: []model.OrderItem{
				{ID: 1, OrderID: 77, ProductID: 10, SellerID: 5, Name: "X-Burger", Price: 1000, Quantity: 2, Total: 2000},
			},
		},
	}, nil)

	u := NewOrderUsecase(orders, new(OrdOrderItemRepoMock), new(CoPaymentsMock))

	outs, err := u.ListMyOrders(context.Background(), 1)

	assert.NoError(t, err)
	if assert.Equal(t, 1, len(outs)) {
		assert.Equal(t, int64(77), outs[0].ID)
		assert.Equal(t, "order_placed", outs[0].Status)
		assert.Equal(t, "Casa", outs[0].Address.Name)
		if assert.Equal(t, 1, len(outs[0].Items)) {
			assert.Equal(t, int64(2000), outs[0].Items[0].Total)
		}
	}
}

func TestOrderUsecase_ListSellerQueue(t *testing.T) {
	orderItems := new(OrdOrderItemRepoMock)
	orderItems.On("ListBySellerID", mock.Anything, int64(5)).Return([]model.OrderItem{
		{
			ID:        1,
			OrderID:   77,
			SellerID:  5,
			ProductID: 10,
			Name:      "X-Burger",
			Price:     1000,
			Quantity:  2,
			Total:     2000,
			Order: model.Order{
				ID:      77,
				Status:  model.OrderStatusPlaced,
				Address: model.Address{ID: 30, Neighborhood: "Centro"},
			},
		},
	}, nil)

	u := NewOrderUsecase(new(OrdOrderRepoMock), orderItems, new(CoPaymentsMock))

	outs, err := u.ListSellerQueue(context.Background(), 5)

	assert.NoError(t, err)
	if assert.Equal(t, 1, len(outs)) {
		assert.Equal(t, int64(77), outs[0].OrderID)
		assert.Equal(t, "order_placed", outs[0].OrderStatus)
		assert.Equal(t, "Centro", outs[0].Address.Neighborhood)
	}
}

// =====================
// Cancel
// =====================

// キャンセル成功：cancelledに遷移→保存済みpayment intentに全額返金
func TestOrderUsecase_Cancel(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, CustomerID: 1, PaymentID: "pi_123", Status: model.OrderStatusPlaced,
	}, nil)
	orders.On("UpdateStatusIf", mock.Anything, int64(77), model.ActiveOrderStatuses(), model.OrderStatusCancelled).Return(nil)

	payments := new(CoPaymentsMock)
	payments.On("Refund", mock.Anything, "pi_123").Return(nil)

	u := NewOrderUsecase(orders, new(OrdOrderItemRepoMock), payments)

	err := u.Cancel(context.Background(), 1, 77)

	assert.NoError(t, err)
	orders.AssertExpectations(t)
	payments.AssertExpectations(t)
}

// 他人の注文は404（存在を漏らさない）
func TestOrderUsecase_Cancel_NotOwner(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, CustomerID: 2, PaymentID: "pi_123",
	}, nil)

	payments := new(CoPaymentsMock)
	u := NewOrderUsecase(orders, new(OrdOrderItemRepoMock), payments)

	err := u.Cancel(context.Background(), 1, 77)

	assertHTTPStatus(t, err, http.StatusNotFound)
	orders.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

// 既にdelivered/cancelledなら409で、返金も出さない
func TestOrderUsecase_Cancel_NotActive(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, CustomerID: 1, PaymentID: "pi_123", Status: model.OrderStatusDelivered,
	}, nil)
	orders.On("UpdateStatusIf", mock.Anything, int64(77), mock.Anything, model.OrderStatusCancelled).Return(repo.ErrNotFound)

	payments := new(CoPaymentsMock)
	u := NewOrderUsecase(orders, new(OrdOrderItemRepoMock), payments)

	err := u.Cancel(context.Background(), 1, 77)

	assertErrContains(t, err, "order is not active")
	assertHTTPStatus(t, err, http.StatusConflict)
	payments.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

// 返金失敗：注文はcancelledのまま、サポート連絡のエラーを返す
func TestOrderUsecase_Cancel_RefundFailure(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(77)).Return(model.Order{
		ID: 77, CustomerID: 1, PaymentID: "pi_123", Status: model.OrderStatusPlaced,
	}, nil)
	orders.On("UpdateStatusIf", mock.Anything, int64(77), mock.Anything, model.OrderStatusCancelled).Return(nil)

	payments := new(CoPaymentsMock)
	payments.On("Refund", mock.Anything, "pi_123").Return(errors.New("stripe down"))

	u := NewOrderUsecase(orders, new(OrdOrderItemRepoMock), payments)

	err := u.Cancel(context.Background(), 1, 77)

	assertErrContains(t, err, "refund failed")
	assertHTTPStatus(t, err, http.StatusBadGateway)
}

// =====================
// MarkDelivered
// =====================

func TestOrderUsecase_MarkDelivered(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("UpdateStatusIf", mock.Anything, int64(77), model.ActiveOrderStatuses(), model.OrderStatusDelivered).Return(nil)

	orderItems := new(OrdOrderItemRepoMock)
	orderItems.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{ID: 1, OrderID: 77, SellerID: 5},
	}, nil)

	u := NewOrderUsecase(orders, orderItems, new(CoPaymentsMock))

	err := u.MarkDelivered(context.Background(), 5, 77)

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

// 自分の明細を含まない注文は404
func TestOrderUsecase_MarkDelivered_NotSellersOrder(t *testing.T) {
	orders := new(OrdOrderRepoMock)

	orderItems := new(OrdOrderItemRepoMock)
	orderItems.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{ID: 1, OrderID: 77, SellerID: 6},
	}, nil)

	u := NewOrderUsecase(orders, orderItems, new(CoPaymentsMock))

	err := u.MarkDelivered(context.Background(), 5, 77)

	assertHTTPStatus(t, err, http.StatusNotFound)
	orders.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_MarkDelivered_NotActive(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("UpdateStatusIf", mock.Anything, int64(77), mock.Anything, model.OrderStatusDelivered).Return(repo.ErrNotFound)

	orderItems := new(OrdOrderItemRepoMock)
	orderItems.On("ListByOrderID", mock.Anything, int64(77)).Return([]model.OrderItem{
		{ID: 1, OrderID: 77, SellerID: 5},
	}, nil)

	u := NewOrderUsecase(orders, orderItems, new(CoPaymentsMock))

	err := u.MarkDelivered(context.Background(), 5, 77)

	assertHTTPStatus(t, err, http.StatusConflict)
}
