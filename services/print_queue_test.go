package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viktortaseski/SelfServ-sub000/models"
)

func TestClaimIsFIFOAndPinsPrinter(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)

	orderA := seedOrder(t, db, table.ID)
	orderB := seedOrder(t, db, table.ID)
	jobA := seedPrintJob(t, db, orderA.ID, "ticket A")
	jobB := seedPrintJob(t, db, orderB.ID, "ticket B")

	svc := NewPrintQueueService(db)
	identity := identityFor(printer)

	claimantID := uint(42)
	first, err := svc.Claim(identity, "kitchen-1", &claimantID)
	assert.NoError(t, err)
	assert.NotNil(t, first)
	assert.Equal(t, jobA.ID, first.ID)
	assert.Equal(t, orderA.ID, first.OrderID)
	assert.Equal(t, "ticket A", first.Payload)
	assert.Equal(t, printer.ID, first.PrinterID)

	// First-claim memaku job ke printer
	var stored models.PrintJob
	db.First(&stored, jobA.ID)
	assert.Equal(t, models.PrintJobStatusClaimed, stored.Status)
	assert.Equal(t, printer.ID, *stored.PrinterID)
	assert.Equal(t, claimantID, *stored.ClaimedBy)
	assert.Equal(t, "kitchen-1", stored.ClaimedByWorker)
	assert.NotNil(t, stored.ClaimedAt)

	second, err := svc.Claim(identity, "kitchen-1", nil)
	assert.NoError(t, err)
	assert.Equal(t, jobB.ID, second.ID)

	// Queue kosong -> nil, bukan error
	third, err := svc.Claim(identity, "kitchen-1", nil)
	assert.NoError(t, err)
	assert.Nil(t, third)
}

func TestClaimDefaultsAndTruncatesWorkerLabel(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)
	job := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "ticket")

	svc := NewPrintQueueService(db)
	claimed, err := svc.Claim(identityFor(printer), "   ", nil)
	assert.NoError(t, err)
	assert.NotNil(t, claimed)

	var stored models.PrintJob
	assert.NoError(t, db.First(&stored, job.ID).Error)
	assert.Equal(t, "unknown", stored.ClaimedByWorker)

	// Label panjang dipotong ke 120. Struct tujuan harus baru; First
	// dengan struct bekas membawa primary key lama sebagai kondisi.
	job2 := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "ticket 2")
	_, err = svc.Claim(identityFor(printer), strings.Repeat("w", 200), nil)
	assert.NoError(t, err)

	var stored2 models.PrintJob
	assert.NoError(t, db.First(&stored2, job2.ID).Error)
	assert.Equal(t, 120, len(stored2.ClaimedByWorker))
}

func TestClaimIsTenantIsolated(t *testing.T) {
	db := setupTestDB(t)
	restaurantA := seedRestaurant(t, db, "Warung A")
	restaurantB := seedRestaurant(t, db, "Warung B")
	tableA := seedTable(t, db, restaurantA.ID, "T1", "qr-a")
	printerB := seedPrinter(t, db, restaurantB.ID, "other", "ptok-b", true)

	seedPrintJob(t, db, seedOrder(t, db, tableA.ID).ID, "ticket A")

	svc := NewPrintQueueService(db)
	claimed, err := svc.Claim(identityFor(printerB), "intruder", nil)
	assert.NoError(t, err)
	assert.Nil(t, claimed, "printer restoran B tidak boleh melihat job restoran A")
}

func TestClaimSkipsJobsPinnedToOtherPrinter(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer1 := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)
	printer2 := seedPrinter(t, db, restaurant.ID, "kitchen-2", "ptok-2", true)

	job := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "pinned")
	db.Model(&models.PrintJob{}).Where("id = ?", job.ID).Update("printer_id", printer2.ID)

	svc := NewPrintQueueService(db)
	claimed, err := svc.Claim(identityFor(printer1), "kitchen-1", nil)
	assert.NoError(t, err)
	assert.Nil(t, claimed)

	claimed, err = svc.Claim(identityFor(printer2), "kitchen-2", nil)
	assert.NoError(t, err)
	assert.NotNil(t, claimed)
	assert.Equal(t, printer2.ID, claimed.PrinterID)
}

func TestClaimLeaseReclaimsStalledJob(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)

	job := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "stalled")
	stale := time.Now().Add(-10 * time.Minute)
	db.Model(&models.PrintJob{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"status":            models.PrintJobStatusClaimed,
		"claimed_at":        stale,
		"claimed_by_worker": "crashed-worker",
		"printer_id":        printer.ID,
	})

	// Lease mati -> job macet selamanya
	svc := &PrintQueueService{DB: db, ClaimLease: 0}
	claimed, err := svc.Claim(identityFor(printer), "kitchen-1", nil)
	assert.NoError(t, err)
	assert.Nil(t, claimed)

	// Lease 5 menit -> job yang ditinggal boleh diambil ulang
	svc = &PrintQueueService{DB: db, ClaimLease: 5 * time.Minute}
	claimed, err = svc.Claim(identityFor(printer), "kitchen-1b", nil)
	assert.NoError(t, err)
	assert.NotNil(t, claimed)
	assert.Equal(t, job.ID, claimed.ID)

	var stored models.PrintJob
	db.First(&stored, job.ID)
	assert.Equal(t, "kitchen-1b", stored.ClaimedByWorker)
	assert.True(t, stored.ClaimedAt.After(stale))
}

func TestMarkPrintedIsIdempotentAck(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)
	job := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "ticket")

	svc := NewPrintQueueService(db)
	identity := identityFor(printer)

	claimed, err := svc.Claim(identity, "kitchen-1", nil)
	assert.NoError(t, err)
	assert.NotNil(t, claimed)

	updated, err := svc.MarkPrinted(identity, job.ID, 0)
	assert.NoError(t, err)
	assert.True(t, updated)

	// Double-ack tidak error, hanya updated=false
	updated, err = svc.MarkPrinted(identity, job.ID, 0)
	assert.NoError(t, err)
	assert.False(t, updated)

	var stored models.PrintJob
	db.First(&stored, job.ID)
	assert.Equal(t, models.PrintJobStatusPrinted, stored.Status)
	assert.NotNil(t, stored.FinishedAt)
	assert.Empty(t, stored.LastError)
}

func TestMarkFailedRecordsTruncatedError(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db, "Warung A")
	table := seedTable(t, db, restaurant.ID, "T1", "qr-1")
	printer := seedPrinter(t, db, restaurant.ID, "kitchen-1", "ptok-1", true)
	job := seedPrintJob(t, db, seedOrder(t, db, table.ID).ID, "ticket")

	svc := NewPrintQueueService(db)
	identity := identityFor(printer)

	updated, err := svc.MarkFailed(identity, job.ID, strings.Repeat("e", 600), 0)
	assert.NoError(t, err)
	assert.True(t, updated)

	var stored models.PrintJob
	db.First(&stored, job.ID)
	assert.Equal(t, models.PrintJobStatusFailed, stored.Status)
	assert.Equal(t, 500, len(stored.LastError))
	assert.NotNil(t, stored.FinishedAt)

	updated, err = svc.MarkFailed(identity, job.ID, "again", 0)
	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestMarkPrintedGuards(t *testing.T) {
	db := setupTestDB(t)
	restaurantA := seedRestaurant(t, db, "Warung A")
	restaurantB := seedRestaurant(t, db, "Warung B")
	tableA := seedTable(t, db, restaurantA.ID, "T1", "qr-a")
	printerA := seedPrinter(t, db, restaurantA.ID, "kitchen-a", "ptok-a", true)
	printerB := seedPrinter(t, db, restaurantB.ID, "kitchen-b", "ptok-b", true)

	job := seedPrintJob(t, db, seedOrder(t, db, tableA.ID).ID, "ticket")

	svc := NewPrintQueueService(db)

	// Restoran lain tidak bisa meng-ack job ini walau tahu id-nya
	updated, err := svc.MarkPrinted(identityFor(printerB), job.ID, 0)
	assert.NoError(t, err)
	assert.False(t, updated)

	// Assertion printer id yang tidak cocok juga ditolak
	claimed, err := svc.Claim(identityFor(printerA), "kitchen-a", nil)
	assert.NoError(t, err)
	assert.NotNil(t, claimed)

	updated, err = svc.MarkPrinted(identityFor(printerA), job.ID, printerB.ID)
	assert.NoError(t, err)
	assert.False(t, updated)

	updated, err = svc.MarkPrinted(identityFor(printerA), job.ID, printerA.ID)
	assert.NoError(t, err)
	assert.True(t, updated)
}
