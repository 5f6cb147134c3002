package models

import "time"

// LegacyPrinterCredential adalah shared secret lama untuk printer yang
// diprovisi sebelum per-printer token ada. Disimpan sebagai record sendiri
// (bukan env var) supaya pemakaiannya bisa diaudit lewat last_used_at.
// Caller yang masih memakai path ini harus dimigrasi ke per-printer token.
type LegacyPrinterCredential struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Secret       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	RestaurantID uint       `gorm:"not null" json:"restaurant_id"`
	QueueName    string     `gorm:"type:varchar(100);not null;default:'default'" json:"queue_name"`
	Note         string     `gorm:"type:varchar(255)" json:"note"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
