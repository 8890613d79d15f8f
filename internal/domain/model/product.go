package model

import "time"

type Product struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID int64 `gorm:"not null;index" json:"seller_id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	//セントス単位（R$10.00 → 1000）
	Price int64 `gorm:"not null" json:"price"`

	//在庫数。チェックアウトでは減算しない（過剰販売は許容）
	AvailableStock int64 `gorm:"not null;default:0" json:"available_stock"`

	//オブジェクトストレージ上の公開URL
	Images []string `gorm:"serializer:json" json:"images"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 商品の先頭画像（無ければ空文字）
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
