package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "order_placed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	//旧データの初期ステータス。order_placedと同じ扱い
	OrderStatusActive OrderStatus = "active"
)

// 遷移元として許可されるステータス（delivered/cancelledは終端）
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPlaced, OrderStatusActive}
}

type Order struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64 `gorm:"not null;index" json:"customer_id"`
	AddressID  int64 `gorm:"not null" json:"address_id"`

	//total = sub_total + tax_shipping_fee。作成後は再計算しない
	SubTotal       int64 `gorm:"not null" json:"sub_total"`
	TaxShippingFee int64 `gorm:"not null" json:"tax_shipping_fee"`
	Total          int64 `gorm:"not null" json:"total"`

	//決済プロバイダのpayment intent ID（返金に使う）
	PaymentID string `gorm:"type:varchar(255);not null" json:"payment_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index;column:order_status" json:"order_status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	Address Address     `gorm:"foreignKey:AddressID" json:"addresses,omitempty"`
}
