package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//電話番号（正の整数のみ）
	PhoneNumber int64 `gorm:"not null" json:"phone_number"`

	//通り名
	Street string `gorm:"type:varchar(255);not null;column:address" json:"address"`

	//地区
	Neighborhood string `gorm:"type:varchar(255);not null" json:"neighborhood"`

	//番地（正の整数のみ）
	Number int64 `gorm:"not null" json:"number"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
