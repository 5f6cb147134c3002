package models

import "time"

const (
	PrintJobStatusQueued  = "queued"
	PrintJobStatusClaimed = "claimed"
	PrintJobStatusPrinted = "printed"
	PrintJobStatusFailed  = "failed"
)

// PrintJob adalah unit kerja queue struk dapur.
// queued -> claimed -> printed | failed; printed/failed terminal.
// Row dibuat oleh proses fulfillment di luar core ini.
type PrintJob struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderID         uint       `gorm:"not null;index" json:"order_id"`
	Order           Order      `gorm:"foreignKey:OrderID" json:"-"`
	Status          string     `gorm:"type:varchar(20);not null;default:'queued';index" json:"status"`
	PrinterID       *uint      `gorm:"index" json:"printer_id,omitempty"`
	Printer         *Printer   `gorm:"foreignKey:PrinterID" json:"-"`
	ClaimedBy       *uint      `json:"claimed_by,omitempty"`
	ClaimedByWorker string     `gorm:"type:varchar(120)" json:"claimed_by_worker"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	LastError       string     `gorm:"type:varchar(500)" json:"last_error"`
	Payload         string     `gorm:"type:text" json:"payload"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}
