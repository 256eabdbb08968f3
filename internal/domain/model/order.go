package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusClaimed is a transient pre-fulfillment lock. It is never
	// exposed outside the store and the reconciliation engine.
	OrderStatusClaimed   OrderStatus = "CLAIMED"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
	OrderStatusExpired   OrderStatus = "EXPIRED"
)

// Order describes a purchase of one package, paid by bank transfer.
type Order struct {
	ID          string
	PackageID   string
	Amount      int64
	Status      OrderStatus
	Key         *string
	CreatedAt   time.Time
	FulfilledAt *time.Time

	// Transaction metadata recorded at fulfillment for audit.
	Gateway         *string
	TransactionDate *string
	ReferenceCode   *string
	PaidAmount      *int64
}

// PublicStatus hides the transient claimed state from callers: a claimed
// order is still pending from the outside until commit or release.
func (o Order) PublicStatus() OrderStatus {
	if o.Status == OrderStatusClaimed {
		return OrderStatusPending
	}
	return o.Status
}

// TransactionMeta carries the audit fields persisted on fulfillment.
type TransactionMeta struct {
	Gateway         string
	TransactionDate string
	ReferenceCode   string
	Amount          int64
}
