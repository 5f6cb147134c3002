package models

import "time"

// Table adalah meja fisik. Token dicetak di QR code dan bersifat permanen;
// core ini hanya membacanya saat exchange.
type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant"`
	TableNumber  string     `gorm:"type:varchar(50);not null" json:"table_number"`
	Token        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
