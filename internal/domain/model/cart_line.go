package model

// カートの1行。商品ごとに最大1行、quantityは常に1以上。
// 商品情報はタイル表示用にデノーマライズして持つ。
type CartLine struct {
	//ローカル採番のカート行ID（UUID）
	ID     string `gorm:"type:varchar(64);primaryKey" json:"cart_line_id"`
	UserID int64  `gorm:"not null;index" json:"-"`

	ProductID int64  `gorm:"not null" json:"product_id"`
	SellerID  int64  `gorm:"not null" json:"seller_id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Price     int64  `gorm:"not null" json:"price"`
	Quantity  int64  `gorm:"not null" json:"quantity"`
	Image     string `gorm:"type:varchar(1024)" json:"image"`
}
