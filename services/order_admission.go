package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

// MessageMaxLen adalah batas panjang catatan order.
const MessageMaxLen = 200

var (
	// ErrTokenInvalid sengaja tidak membedakan expired / sudah dipakai /
	// tidak ada, supaya tidak bocor kasus mana yang terjadi.
	ErrTokenInvalid = errors.New("access token expired or already used - rescan the QR")
	ErrEmptyOrder   = errors.New("order must contain at least one item")
)

type OrderAdmissionService struct {
	DB *gorm.DB
}

func NewOrderAdmissionService(db *gorm.DB) *OrderAdmissionService {
	return &OrderAdmissionService{DB: db}
}

// OrderItemInput adalah satu baris cart. Quantity bertipe bebas karena
// klien lama mengirim angka, string, atau sampah; nilai non-numerik dan
// non-positif diam-diam menjadi 1 (perilaku produk, jangan "diperbaiki").
type OrderItemInput struct {
	ID       uint        `json:"id"`
	Quantity interface{} `json:"quantity"`
}

type PlaceOrderInput struct {
	AccessToken string
	Items       []OrderItemInput
	Role        string
	WaiterID    *uint
	Message     string
}

// PlaceOrder mengonsumsi access token dan membuat order beserta item-nya
// dalam satu transaksi. Token di-lock (FOR UPDATE) supaya dua percobaan
// bersamaan tidak sama-sama melihat token sebagai valid; jika ada kegagalan
// setelah token ditandai terpakai, seluruh transaksi di-rollback sehingga
// token tetap bisa dipakai ulang.
func (oa *OrderAdmissionService) PlaceOrder(input PlaceOrderInput) (uint, error) {
	if input.AccessToken == "" {
		return 0, ErrTokenInvalid
	}
	if len(input.Items) == 0 {
		return 0, ErrEmptyOrder
	}

	var orderID uint
	err := oa.DB.Transaction(func(tx *gorm.DB) error {
		var token models.AccessToken
		q := tx.Where("token = ? AND used_at IS NULL AND expires_at > ?",
			input.AccessToken, time.Now())
		// sqlite tidak punya row lock; single-writer model-nya sudah
		// menserialkan transaksi tulis.
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}

		// Tandai token terpakai selagi masih memegang lock, sebelum
		// order dibuat.
		now := time.Now()
		if err := tx.Model(&models.AccessToken{}).
			Where("id = ?", token.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}

		order := models.Order{
			TableID:       token.TableID,
			CreatedByRole: input.Role,
			Status:        "pending",
			WaiterID:      input.WaiterID,
			Message:       utils.TruncateRunes(input.Message, MessageMaxLen),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   normalizeQuantity(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// normalizeQuantity memaksa quantity menjadi integer >= 1.
func normalizeQuantity(v interface{}) int {
	switch q := v.(type) {
	case float64:
		return clampQuantity(q)
	case int:
		if q >= 1 {
			return q
		}
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(q), 64); err == nil {
			return clampQuantity(n)
		}
	}
	return 1
}

// clampQuantity membatasi konversi float->int: nilai raksasa dari JSON
// akan overflow menjadi negatif kalau langsung di-cast.
func clampQuantity(n float64) int {
	if n < 1 {
		return 1
	}
	if n >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
