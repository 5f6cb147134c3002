package services

import (
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

const (
	// WorkerLabelMaxLen membatasi label worker bebas-teks.
	WorkerLabelMaxLen = 120
	// LastErrorMaxLen membatasi pesan error yang disimpan di job.
	LastErrorMaxLen = 500
	// DefaultClaimLease: job yang masih 'claimed' lebih lama dari ini
	// dianggap ditinggal worker yang crash dan boleh di-claim ulang.
	DefaultClaimLease = 5 * time.Minute
)

type PrintQueueService struct {
	DB *gorm.DB
	// ClaimLease 0 mematikan re-claim job yang macet.
	ClaimLease time.Duration
}

func NewPrintQueueService(db *gorm.DB) *PrintQueueService {
	return &PrintQueueService{DB: db, ClaimLease: claimLeaseFromEnv()}
}

func claimLeaseFromEnv() time.Duration {
	v := os.Getenv("PRINT_CLAIM_LEASE")
	if v == "" {
		return DefaultClaimLease
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.ErrorLogger.Printf("invalid PRINT_CLAIM_LEASE %q, using default %s", v, DefaultClaimLease)
		return DefaultClaimLease
	}
	return d
}

// ClaimedJob adalah hasil claim yang dikirim balik ke worker printer.
type ClaimedJob struct {
	ID        uint   `json:"id"`
	OrderID   uint   `json:"order_id"`
	Payload   string `json:"payload"`
	PrinterID uint   `json:"printerId"`
}

// Claim mengambil paling banyak satu job queued milik restoran printer ini,
// FIFO berdasarkan id. Kontrak competing-consumers: N worker yang polling
// bersamaan tidak pernah menerima job yang sama, dan worker yang sedang
// meng-claim satu row tidak memblokir worker lain mengambil row berbeda
// (FOR UPDATE SKIP LOCKED). Queue kosong mengembalikan nil, bukan error.
func (pq *PrintQueueService) Claim(identity *PrinterIdentity, workerLabel string, claimantID *uint) (*ClaimedJob, error) {
	label := utils.TruncateRunes(strings.TrimSpace(workerLabel), WorkerLabelMaxLen)
	if label == "" {
		label = "unknown"
	}

	var claimed *ClaimedJob
	err := pq.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		q := tx.Model(&models.PrintJob{}).
			Select("print_jobs.*").
			Joins("JOIN orders ON orders.id = print_jobs.order_id").
			Joins("JOIN tables ON tables.id = orders.table_id").
			Where("tables.restaurant_id = ?", identity.RestaurantID).
			Where("(print_jobs.printer_id IS NULL OR print_jobs.printer_id = ?)", identity.ID).
			Order("print_jobs.id ASC").
			Limit(1)
		if pq.ClaimLease > 0 {
			// Lease: job claimed yang tidak pernah di-ack boleh diambil
			// ulang setelah lease lewat.
			q = q.Where("(print_jobs.status = ? OR (print_jobs.status = ? AND print_jobs.claimed_at < ?))",
				models.PrintJobStatusQueued, models.PrintJobStatusClaimed, now.Add(-pq.ClaimLease))
		} else {
			q = q.Where("print_jobs.status = ?", models.PrintJobStatusQueued)
		}
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{
				Strength: "UPDATE",
				Table:    clause.Table{Name: "print_jobs"},
				Options:  "SKIP LOCKED",
			})
		}

		var jobs []models.PrintJob
		if err := q.Find(&jobs).Error; err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}
		job := jobs[0]

		updates := map[string]interface{}{
			"status":            models.PrintJobStatusClaimed,
			"claimed_at":        now,
			"claimed_by":        claimantID,
			"claimed_by_worker": label,
		}
		// First-claim memaku job ke printer yang meng-claim.
		if job.PrinterID == nil {
			updates["printer_id"] = identity.ID
		}
		if err := tx.Model(&models.PrintJob{}).
			Where("id = ?", job.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		printerID := identity.ID
		if job.PrinterID != nil {
			printerID = *job.PrinterID
		}
		claimed = &ClaimedJob{
			ID:        job.ID,
			OrderID:   job.OrderID,
			Payload:   job.Payload,
			PrinterID: printerID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// MarkPrinted menandai job selesai dicetak. Mengembalikan true kalau tepat
// satu row berubah; double-ack mengembalikan false tanpa error.
func (pq *PrintQueueService) MarkPrinted(identity *PrinterIdentity, jobID uint, assertedPrinterID uint) (bool, error) {
	res := pq.guardedJobQuery(identity, jobID, assertedPrinterID).
		Where("status <> ?", models.PrintJobStatusPrinted).
		Updates(map[string]interface{}{
			"status":      models.PrintJobStatusPrinted,
			"finished_at": time.Now(),
			"last_error":  "",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkFailed menandai job gagal dan menyimpan pesan error-nya.
func (pq *PrintQueueService) MarkFailed(identity *PrinterIdentity, jobID uint, errorMessage string, assertedPrinterID uint) (bool, error) {
	res := pq.guardedJobQuery(identity, jobID, assertedPrinterID).
		Where("status <> ?", models.PrintJobStatusFailed).
		Updates(map[string]interface{}{
			"status":      models.PrintJobStatusFailed,
			"finished_at": time.Now(),
			"last_error":  utils.TruncateRunes(errorMessage, LastErrorMaxLen),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// guardedJobQuery membangun WHERE kepemilikan yang sama untuk done/error:
// id cocok, order milik restoran caller, dan (jika di-assert) printer cocok.
func (pq *PrintQueueService) guardedJobQuery(identity *PrinterIdentity, jobID uint, assertedPrinterID uint) *gorm.DB {
	q := pq.DB.Model(&models.PrintJob{}).
		Where("id = ?", jobID).
		Where("order_id IN (SELECT orders.id FROM orders JOIN tables ON tables.id = orders.table_id WHERE tables.restaurant_id = ?)",
			identity.RestaurantID)
	if assertedPrinterID != 0 {
		q = q.Where("printer_id = ?", assertedPrinterID)
	}
	return q
}
