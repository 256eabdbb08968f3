package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/server/http/dto"
)

// OrderHandler manages buyer-facing order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PackageID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "packageId is required"})
		return
	}

	order, qrURL, err := h.facade.CreateOrder(c.Request.Context(), req.PackageID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnknownPackage) {
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "unknown package"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		Success: true,
		Order: dto.OrderPayload{
			ID:        order.ID,
			PackageID: order.PackageID,
			Amount:    order.Amount,
			QRURL:     qrURL,
		},
	})
}

// Status handles POST /api/check-status. Read-only: polling never changes
// the order.
func (h *OrderHandler) Status(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "orderId is required"})
		return
	}

	order, err := h.facade.OrderStatus(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Success: true,
		Status:  string(order.PublicStatus()),
		Key:     order.Key,
		PaidAt:  order.FulfilledAt,
	})
}
