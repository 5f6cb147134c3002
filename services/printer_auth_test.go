package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viktortaseski/SelfServ-sub000/models"
)

func TestAuthenticateResolvesActivePrinter(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)

	svc := NewPrinterAuthService(db)

	identity, err := svc.Authenticate("ptok-1", 0)
	assert.NoError(t, err)
	assert.Equal(t, printer.ID, identity.ID)
	assert.Equal(t, restaurant.ID, identity.RestaurantID)
	assert.Equal(t, "kitchen-1", identity.Label)
	assert.Equal(t, "kitchen", identity.QueueName)

	// Requested id yang cocok tetap lolos
	identity, err = svc.Authenticate("ptok-1", printer.ID)
	assert.NoError(t, err)
	assert.Equal(t, printer.ID, identity.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-inactive", false)

	// Pastikan seed benar-benar nonaktif; kolom is_active ber-default true
	// sehingga Create saja tidak cukup.
	var stored models.Printer
	assert.NoError(t, db.First(&stored, "api_token = ?", "ptok-inactive").Error)
	assert.False(t, stored.IsActive)

	svc := NewPrinterAuthService(db)

	_, err := svc.Authenticate("", 0)
	assert.ErrorIs(t, err, ErrPrinterUnauthorized)

	_, err = svc.Authenticate("no-such-token", 0)
	assert.ErrorIs(t, err, ErrPrinterUnauthorized)

	// Printer nonaktif diperlakukan seperti token tidak dikenal
	_, err = svc.Authenticate("ptok-inactive", 0)
	assert.ErrorIs(t, err, ErrPrinterUnauthorized)
}

func TestAuthenticateRejectsPrinterMismatch(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)

	svc := NewPrinterAuthService(db)

	// Token milik printer A tidak boleh dipakai sebagai printer B
	_, err := svc.Authenticate("ptok-1", printer.ID+100)
	assert.ErrorIs(t, err, ErrPrinterMismatch)
}

func TestAuthenticateLegacyCredential(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung Default")
	cred := models.LegacyPrinterCredential{
		Secret:       "legacy-secret",
		RestaurantID: restaurant.ID,
		QueueName:    "default",
		Note:         "pre-provisioned fleet",
	}
	assert.NoError(t, db.Create(&cred).Error)

	svc := NewPrinterAuthService(db)

	// Legacy path wajib menyebut printer id
	_, err := svc.Authenticate("legacy-secret", 0)
	assert.ErrorIs(t, err, ErrPrinterIDRequired)

	identity, err := svc.Authenticate("legacy-secret", 9)
	assert.NoError(t, err)
	assert.Equal(t, uint(9), identity.ID)
	assert.Equal(t, restaurant.ID, identity.RestaurantID)
	assert.Equal(t, "default", identity.QueueName)
	assert.Equal(t, "legacy", identity.Label)

	// Pemakaian tercatat untuk audit
	var stored models.LegacyPrinterCredential
	db.First(&stored, cred.ID)
	assert.NotNil(t, stored.LastUsedAt)
}
