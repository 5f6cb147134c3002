package models

import "time"

const (
	OrderRoleCustomer = "customer"
	OrderRoleWaiter   = "waiter"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	TableID       uint        `gorm:"not null;index" json:"table_id"`
	Table         Table       `gorm:"foreignKey:TableID" json:"table"`
	CreatedByRole string      `gorm:"type:varchar(20);not null" json:"created_by_role"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	WaiterID      *uint       `gorm:"index" json:"waiter_id,omitempty"`
	Waiter        *User       `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	Message       string      `gorm:"type:varchar(200)" json:"message"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
