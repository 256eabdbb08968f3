package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/server/http/dto"
)

// WebhookHandler receives transaction notifications from the payment gateway.
type WebhookHandler struct {
	facade ReconcileFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade ReconcileFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Handle handles POST /api/webhook/sepay. Business outcomes are acknowledged
// with 200 regardless of success so the gateway does not retry unmatchable
// transactions forever; only transient failures return 500 to request a
// redelivery.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Success: false, Error: "invalid payload"})
		return
	}

	tx := model.InboundTransaction{
		Gateway:         req.Gateway,
		TransactionDate: req.TransactionDate,
		AccountNumber:   req.AccountNumber,
		TransferType:    req.TransferType,
		Amount:          req.TransferAmount,
		Content:         req.Content,
		ReferenceCode:   req.ReferenceCode,
	}

	result, err := h.facade.Reconcile(c.Request.Context(), tx)
	if err != nil {
		// Detail stays in the server log; the gateway only needs to know
		// the delivery should be retried.
		h.logger.Error("transaction processing failed",
			slog.String("referenceCode", req.ReferenceCode),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.WebhookResponse{Success: false, Error: "failed to process transaction"})
		return
	}

	switch result.Outcome {
	case model.ReconcileFulfilled:
		c.JSON(http.StatusOK, dto.WebhookResponse{
			Success: true,
			Message: "Payment confirmed",
			OrderID: result.OrderID,
			Key:     result.Key,
		})
	case model.ReconcileIgnored:
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: true, Message: result.Reason})
	default:
		c.JSON(http.StatusOK, dto.WebhookResponse{Success: false, Message: result.Reason})
	}
}
