package models

import "time"

// AccessToken adalah kredensial sekali pakai hasil scan QR.
// used_at hanya boleh berubah null -> non-null satu kali, dan hanya selama
// expires_at masih di masa depan. Row tidak pernah dihapus (audit).
type AccessToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	TableID   uint       `gorm:"not null;index" json:"table_id"`
	Table     Table      `gorm:"foreignKey:TableID" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
