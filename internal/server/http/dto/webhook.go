package dto

// WebhookRequest mirrors the SePay transaction notification payload.
type WebhookRequest struct {
	Gateway         string `json:"gateway"`
	TransactionDate string `json:"transactionDate"`
	AccountNumber   string `json:"accountNumber"`
	TransferType    string `json:"transferType"`
	TransferAmount  int64  `json:"transferAmount"`
	Content         string `json:"content"`
	ReferenceCode   string `json:"referenceCode"`
}

// WebhookResponse acknowledges a transaction notification. Ignored and
// rejected transactions are acknowledged with HTTP 200 so the gateway stops
// retrying permanently-unmatchable deliveries.
type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}
