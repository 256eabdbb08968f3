package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/server/http/dto"
)

// AdminHandler exposes operator endpoints.
type AdminHandler struct {
	facade OrderFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade OrderFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	response := make([]dto.AdminOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toAdminOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

func toAdminOrderResponse(order model.Order) dto.AdminOrderResponse {
	return dto.AdminOrderResponse{
		ID:            order.ID,
		PackageID:     order.PackageID,
		Amount:        order.Amount,
		Status:        string(order.PublicStatus()),
		Key:           order.Key,
		CreatedAt:     order.CreatedAt,
		FulfilledAt:   order.FulfilledAt,
		ReferenceCode: order.ReferenceCode,
	}
}
