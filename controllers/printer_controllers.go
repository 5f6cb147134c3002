package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

type PrinterController struct {
	DB *gorm.DB
}

func NewPrinterController(db *gorm.DB) *PrinterController {
	return &PrinterController{DB: db}
}

// CreatePrinter -> daftarkan printer baru dan terbitkan api token-nya.
func (pc *PrinterController) CreatePrinter(c *gin.Context) {
	var req struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		Label        string `json:"label" binding:"required"`
		QueueName    string `json:"queue_name"`
		APIBase      string `json:"api_base"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := pc.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	token, err := utils.GenerateOpaqueToken(utils.AccessTokenBytes)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	printer := models.Printer{
		RestaurantID: req.RestaurantID,
		Label:        req.Label,
		QueueName:    req.QueueName,
		APIBase:      req.APIBase,
		APIToken:     token,
		IsActive:     true,
	}
	if printer.QueueName == "" {
		printer.QueueName = "default"
	}

	if err := pc.DB.Create(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New printer registered: %s (restaurant=%d)", printer.Label, printer.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Printer created", gin.H{
		"printer": printer,
		// Token hanya ditampilkan sekali saat provisioning.
		"api_token": token,
	})
}

// GetAllPrinters -> daftar printer, opsional difilter per restoran.
func (pc *PrinterController) GetAllPrinters(c *gin.Context) {
	q := pc.DB.Model(&models.Printer{})
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		q = q.Where("restaurant_id = ?", restaurantID)
	}

	var printers []models.Printer
	if err := q.Find(&printers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of printers", printers)
}

// SetPrinterActive -> aktifkan / nonaktifkan printer. Printer nonaktif
// langsung ditolak oleh authenticator.
func (pc *PrinterController) SetPrinterActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var printer models.Printer
	if err := pc.DB.First(&printer, c.Param("printer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	printer.IsActive = *req.IsActive
	if err := pc.DB.Save(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Printer %d active=%v", printer.ID, printer.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Printer updated", printer)
}
