package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/viktortaseski/SelfServ-sub000/models"
	"github.com/viktortaseski/SelfServ-sub000/services"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

type OrderController struct {
	DB        *gorm.DB
	admission *services.OrderAdmissionService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:        db,
		admission: services.NewOrderAdmissionService(db),
	}
}

type placeOrderRequest struct {
	AccessToken string                    `json:"accessToken" binding:"required"`
	Items       []services.OrderItemInput `json:"items" binding:"required"`
	Message     string                    `json:"message"`
}

// PlaceCustomerOrder -> order anonim dari pelanggan yang scan QR.
func (oc *OrderController) PlaceCustomerOrder(c *gin.Context) {
	oc.placeOrder(c, models.OrderRoleCustomer, nil)
}

// PlaceWaiterOrder -> order oleh staff; identitas waiter dari JWT.
func (oc *OrderController) PlaceWaiterOrder(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, ErrNoPermission)
		return
	}
	waiterID := userID.(uint)
	oc.placeOrder(c, models.OrderRoleWaiter, &waiterID)
}

func (oc *OrderController) placeOrder(c *gin.Context, role string, waiterID *uint) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, err := oc.admission.PlaceOrder(services.PlaceOrderInput{
		AccessToken: req.AccessToken,
		Items:       req.Items,
		Role:        role,
		WaiterID:    waiterID,
		Message:     req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenInvalid), errors.Is(err, services.ErrEmptyOrder):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.ErrorLogger.Printf("order admission failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order %d created (role=%s, items=%d)", orderID, role, len(req.Items))
	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id": orderID,
	})
}

// GetOrderByID -> detail 1 order beserta items (untuk staff).
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
