package model

import "time"

// 注文明細。name/price/imageは注文時点のスナップショット。
// 商品が後から変更・削除されても履歴は変わらない。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	SellerID  int64 `gorm:"not null;index" json:"seller_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Price    int64  `gorm:"not null" json:"price"`
	Quantity int64  `gorm:"not null" json:"quantity"`
	Image    string `gorm:"type:varchar(1024)" json:"image"`

	//total = price × quantity（サーバー側で算出）
	Total int64 `gorm:"not null" json:"total"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}
