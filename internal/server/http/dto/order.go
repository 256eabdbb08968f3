package dto

import "time"

// CreateOrderRequest starts a purchase for one package.
type CreateOrderRequest struct {
	PackageID string `json:"packageId"`
}

// OrderPayload is the order summary returned on creation.
type OrderPayload struct {
	ID        string `json:"id"`
	PackageID string `json:"packageId"`
	Amount    int64  `json:"amount"`
	QRURL     string `json:"qrUrl"`
}

// CreateOrderResponse wraps the created order.
type CreateOrderResponse struct {
	Success bool         `json:"success"`
	Order   OrderPayload `json:"order"`
}

// StatusRequest asks for the current state of one order.
type StatusRequest struct {
	OrderID string `json:"orderId"`
}

// StatusResponse reports order state to a polling buyer.
type StatusResponse struct {
	Success bool       `json:"success"`
	Status  string     `json:"status"`
	Key     *string    `json:"key"`
	PaidAt  *time.Time `json:"paidAt"`
}

// AdminOrderResponse is one row of the admin listing.
type AdminOrderResponse struct {
	ID            string     `json:"id"`
	PackageID     string     `json:"packageId"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	Key           *string    `json:"key,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	FulfilledAt   *time.Time `json:"fulfilledAt,omitempty"`
	ReferenceCode *string    `json:"referenceCode,omitempty"`
}

// ErrorResponse carries a safe, generic failure message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
