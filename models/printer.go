package models

import "time"

// Printer adalah endpoint thermal printer milik satu restoran.
// APIToken dipakai sebagai bearer credential untuk semua operasi queue.
type Printer struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Label        string     `gorm:"type:varchar(100);not null" json:"label"`
	QueueName    string     `gorm:"type:varchar(100);not null;default:'default'" json:"queue_name"`
	APIBase      string     `gorm:"type:varchar(255)" json:"api_base"`
	APIToken     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
