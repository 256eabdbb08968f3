package repository

import (
	"context"
	"time"

	"github.com/khangtran/keygate/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. The store is
// the sole arbiter of order status transitions: Claim, CommitFulfillment and
// ReleaseClaim are the only ways an order changes state, and Claim must be
// linearizable with respect to concurrent callers on the same id.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// FindPendingByIDAndAmount locates a pending order matching both id and
	// amount in a single query against current state.
	FindPendingByIDAndAmount(ctx context.Context, id string, amount int64) (*model.Order, error)
	// Claim atomically moves a pending order to the claimed state. Returns
	// ErrAlreadyClaimed when the order is no longer pending; two concurrent
	// claims on the same order never both succeed.
	Claim(ctx context.Context, id string) error
	// CommitFulfillment moves a claimed order to fulfilled, attaching the
	// issued key and transaction metadata.
	CommitFulfillment(ctx context.Context, id, key string, meta model.TransactionMeta) error
	// ReleaseClaim reverts a claimed order to pending after a failed
	// issuance so a retried webhook can attempt again.
	ReleaseClaim(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Order, error)
	// ExpireStale marks pending orders created before cutoff as expired and
	// returns how many were affected.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}
