package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/services"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

type TokenController struct {
	DB       *gorm.DB
	exchange *services.TokenExchangeService
}

func NewTokenController(db *gorm.DB) *TokenController {
	return &TokenController{
		DB:       db,
		exchange: services.NewTokenExchangeService(db),
	}
}

// Exchange -> tukar token QR meja menjadi access token 5 menit.
func (tc *TokenController) Exchange(c *gin.Context) {
	var req struct {
		TableToken string `json:"tableToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrMissingToken)
		return
	}

	result, err := tc.exchange.Exchange(req.TableToken)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.ErrorLogger.Printf("token exchange failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Access token issued for table %d (expires %s)",
		result.Table.ID, result.ExpiresAt.Format("15:04:05"))
	utils.RespondJSON(c, http.StatusCreated, "Access token issued", result)
}
