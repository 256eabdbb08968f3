package model

// TransferTypeIn marks an incoming bank transaction in gateway payloads.
const TransferTypeIn = "in"

// InboundTransaction is one bank transaction as reported by the payment
// gateway webhook. It is ephemeral: it drives a single reconciliation
// attempt and is never persisted as an entity.
type InboundTransaction struct {
	Gateway         string
	TransactionDate string
	AccountNumber   string
	TransferType    string
	Amount          int64
	Content         string
	ReferenceCode   string
}

// ReconcileOutcome classifies the result of one reconciliation attempt.
type ReconcileOutcome string

const (
	// ReconcileIgnored means the transaction does not concern the shop at
	// all (outgoing transfer, foreign account).
	ReconcileIgnored ReconcileOutcome = "ignored"
	// ReconcileRejected means the transaction looked relevant but matched
	// no pending order.
	ReconcileRejected ReconcileOutcome = "rejected"
	// ReconcileFulfilled means exactly one order was fulfilled.
	ReconcileFulfilled ReconcileOutcome = "fulfilled"
)

// ReconcileResult reports what the engine did with a transaction.
type ReconcileResult struct {
	Outcome ReconcileOutcome
	Reason  string
	OrderID string
	Key     string
}
