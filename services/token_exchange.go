package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

// AccessTokenTTL adalah umur access token sejak diterbitkan.
const AccessTokenTTL = 5 * time.Minute

var ErrTableNotFound = errors.New("table not found")

type TokenExchangeService struct {
	DB *gorm.DB
}

func NewTokenExchangeService(db *gorm.DB) *TokenExchangeService {
	return &TokenExchangeService{DB: db}
}

type ExchangeResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Table       TableInfo `json:"table"`
}

type TableInfo struct {
	ID          uint           `json:"id"`
	TableNumber string         `json:"table_number"`
	Restaurant  RestaurantInfo `json:"restaurant"`
}

type RestaurantInfo struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Radius   float64 `json:"radius"`
}

// Exchange menukar token QR meja menjadi access token sekali pakai
// yang berlaku 5 menit. Setiap panggilan menerbitkan token baru yang
// independen; beberapa token aktif boleh hidup bersamaan untuk satu meja.
func (ts *TokenExchangeService) Exchange(tableToken string) (*ExchangeResult, error) {
	var table models.Table
	if err := ts.DB.Preload("Restaurant").
		Where("token = ?", tableToken).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	opaque, err := utils.GenerateOpaqueToken(utils.AccessTokenBytes)
	if err != nil {
		return nil, err
	}

	accessToken := models.AccessToken{
		Token:     opaque,
		TableID:   table.ID,
		ExpiresAt: time.Now().Add(AccessTokenTTL),
	}
	if err := ts.DB.Create(&accessToken).Error; err != nil {
		return nil, err
	}

	return &ExchangeResult{
		AccessToken: accessToken.Token,
		ExpiresAt:   accessToken.ExpiresAt,
		Table: TableInfo{
			ID:          table.ID,
			TableNumber: table.TableNumber,
			Restaurant: RestaurantInfo{
				ID:       table.Restaurant.ID,
				Name:     table.Restaurant.Name,
				Location: table.Restaurant.Location,
				Radius:   table.Restaurant.Radius,
			},
		},
	}, nil
}
