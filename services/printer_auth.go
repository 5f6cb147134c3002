package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

var (
	ErrPrinterUnauthorized = errors.New("invalid printer credential")
	ErrPrinterMismatch     = errors.New("printer mismatch for token")
	ErrPrinterIDRequired   = errors.New("printer id required for legacy credential")
)

// PrinterIdentity adalah identitas printer yang sudah terautentikasi.
// Semua operasi queue di-scope ke RestaurantID identitas ini.
type PrinterIdentity struct {
	ID           uint   `json:"id"`
	RestaurantID uint   `json:"restaurant_id"`
	Label        string `json:"label"`
	QueueName    string `json:"queue_name"`
	APIBase      string `json:"api_base"`
}

type PrinterAuthService struct {
	DB *gorm.DB
}

func NewPrinterAuthService(db *gorm.DB) *PrinterAuthService {
	return &PrinterAuthService{DB: db}
}

// Authenticate me-resolve bearer token (tanpa prefix "Bearer ") menjadi
// identitas printer. requestedID 0 berarti caller tidak meminta printer
// tertentu. Token yang terikat ke printer A tidak pernah boleh bertindak
// sebagai printer B, walau tokennya valid.
func (pa *PrinterAuthService) Authenticate(token string, requestedID uint) (*PrinterIdentity, error) {
	if token == "" {
		return nil, ErrPrinterUnauthorized
	}

	var printer models.Printer
	err := pa.DB.Where("api_token = ? AND is_active = ?", token, true).
		First(&printer).Error
	if err == nil {
		if requestedID != 0 && requestedID != printer.ID {
			return nil, ErrPrinterMismatch
		}
		return &PrinterIdentity{
			ID:           printer.ID,
			RestaurantID: printer.RestaurantID,
			Label:        printer.Label,
			QueueName:    printer.QueueName,
			APIBase:      printer.APIBase,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return pa.authenticateLegacy(token, requestedID)
}

// authenticateLegacy mengecek shared secret lama. Path ini memberi akses ke
// printer id mana pun di bawah restoran default credential tersebut, jadi
// lebih lemah dari per-printer token; setiap pemakaian dicatat untuk audit.
func (pa *PrinterAuthService) authenticateLegacy(token string, requestedID uint) (*PrinterIdentity, error) {
	var cred models.LegacyPrinterCredential
	if err := pa.DB.Where("secret = ?", token).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrinterUnauthorized
		}
		return nil, err
	}

	if requestedID == 0 {
		return nil, ErrPrinterIDRequired
	}

	now := time.Now()
	if err := pa.DB.Model(&models.LegacyPrinterCredential{}).
		Where("id = ?", cred.ID).
		Update("last_used_at", now).Error; err != nil {
		return nil, err
	}

	utils.ErrorLogger.Printf(
		"legacy printer credential used for printer_id=%d (credential #%d); migrate this printer to a per-printer token",
		requestedID, cred.ID)

	return &PrinterIdentity{
		ID:           requestedID,
		RestaurantID: cred.RestaurantID,
		Label:        "legacy",
		QueueName:    cred.QueueName,
	}, nil
}
