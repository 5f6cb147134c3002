package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/middlewares"
	"github.com/viktortaseski/SelfServ-sub000/services"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

type PrintJobController struct {
	DB    *gorm.DB
	queue *services.PrintQueueService
}

func NewPrintJobController(db *gorm.DB) *PrintJobController {
	return &PrintJobController{
		DB:    db,
		queue: services.NewPrintQueueService(db),
	}
}

// GetConfig -> identitas printer yang terautentikasi, untuk bootstrap worker.
func (pc *PrintJobController) GetConfig(c *gin.Context) {
	identity, ok := middlewares.GetPrinterIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingPrinter)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Printer config", gin.H{
		"printer": gin.H{
			"id":           identity.ID,
			"restaurantId": identity.RestaurantID,
			"label":        identity.Label,
			"queueName":    identity.QueueName,
			"apiBase":      identity.APIBase,
		},
	})
}

type claimRequest struct {
	Worker      string `json:"worker"`
	WorkerID    string `json:"workerId"`
	ClaimedByID *uint  `json:"claimedById"`
	EmployeeID  *uint  `json:"employeeId"`
}

// ClaimJob -> ambil paling banyak satu job queued untuk printer ini.
// Queue kosong mengembalikan job null, bukan error.
func (pc *PrintJobController) ClaimJob(c *gin.Context) {
	identity, ok := middlewares.GetPrinterIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingPrinter)
		return
	}

	var req claimRequest
	// Body boleh kosong; worker lama tidak selalu mengirim JSON.
	_ = c.ShouldBindJSON(&req)

	label := req.Worker
	if label == "" {
		label = req.WorkerID
	}
	claimantID := req.ClaimedByID
	if claimantID == nil {
		claimantID = req.EmployeeID
	}

	job, err := pc.queue.Claim(identity, label, claimantID)
	if err != nil {
		utils.ErrorLogger.Printf("claim failed for printer %d: %v", identity.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if job == nil {
		utils.RespondJSON(c, http.StatusOK, "No job available", gin.H{"job": nil})
		return
	}

	utils.InfoLogger.Printf("Job %d claimed by printer %d (worker=%q)", job.ID, identity.ID, label)
	utils.RespondJSON(c, http.StatusOK, "Job claimed", gin.H{"job": job})
}

// MarkDone -> job selesai dicetak. updated=false untuk double-ack.
func (pc *PrintJobController) MarkDone(c *gin.Context) {
	identity, ok := middlewares.GetPrinterIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingPrinter)
		return
	}

	jobID, err := strconv.ParseUint(c.Param("job_id"), 10, 32)
	if err != nil || jobID == 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid job id"})
		return
	}

	updated, err := pc.queue.MarkPrinted(identity, uint(jobID), middlewares.ResolvePrinterID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job acked", gin.H{"updated": updated})
}

type failRequest struct {
	Error string `json:"error" binding:"required"`
}

// MarkError -> job gagal dicetak; pesan error disimpan di job.
func (pc *PrintJobController) MarkError(c *gin.Context) {
	identity, ok := middlewares.GetPrinterIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, ErrMissingPrinter)
		return
	}

	jobID, err := strconv.ParseUint(c.Param("job_id"), 10, 32)
	if err != nil || jobID == 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid job id"})
		return
	}

	// Resolve dulu sebelum ShouldBindJSON menghabiskan body; printerId
	// boleh datang lewat body JSON.
	assertedID := middlewares.ResolvePrinterID(c)

	var req failRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := pc.queue.MarkFailed(identity, uint(jobID), req.Error, assertedID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Job failure recorded", gin.H{"updated": updated})
}
