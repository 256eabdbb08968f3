package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, string) (*model.Order, string, error)
	StatusFn func(context.Context, string) (*model.Order, error)
	ListFn   func(context.Context) ([]model.Order, error)
}

// CreateOrder delegates to the provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, packageID string) (*model.Order, string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, packageID)
	}
	order := &model.Order{ID: "TESTORDER", PackageID: packageID, Amount: 20000, Status: model.OrderStatusPending}
	return order, "https://qr.sepay.vn/img?acc=1", nil
}

// OrderStatus returns the configured order or not found.
func (s OrderFacadeStub) OrderStatus(ctx context.Context, orderID string) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

// Orders returns the configured listing.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

// ShopFacadeStub combines order and reconcile stubs behind the aggregate
// facade interface used by the router.
type ShopFacadeStub struct {
	OrderFacadeStub
	ReconcileFacadeStub
}

// ReconcileFacadeStub simulates the reconciliation engine for webhook tests.
type ReconcileFacadeStub struct {
	ReconcileFn func(context.Context, model.InboundTransaction) (*model.ReconcileResult, error)
}

// Reconcile delegates to the provided function or reports fulfillment.
func (s ReconcileFacadeStub) Reconcile(ctx context.Context, tx model.InboundTransaction) (*model.ReconcileResult, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, tx)
	}
	return &model.ReconcileResult{Outcome: model.ReconcileFulfilled, OrderID: "TESTORDER", Key: "KEY"}, nil
}

// KeyIssuerStub counts issuance calls and returns configurable results.
type KeyIssuerStub struct {
	mu      sync.Mutex
	IssueFn func(context.Context, int, string) (string, error)
	Calls   int
}

// IssueKey records the call and delegates or returns a fixed key.
func (s *KeyIssuerStub) IssueKey(ctx context.Context, hours int, note string) (string, error) {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
	if s.IssueFn != nil {
		return s.IssueFn(ctx, hours, note)
	}
	return "STUBKEY123456789", nil
}

// IssuedCalls returns how many times IssueKey ran.
func (s *KeyIssuerStub) IssuedCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// SweeperFacadeStub records expiry sweeps for worker tests.
type SweeperFacadeStub struct {
	mu       sync.Mutex
	ExpireFn func(context.Context, time.Duration) (int64, error)
	Sweeps   int
}

// ExpireStaleOrders records the sweep and delegates when configured.
func (s *SweeperFacadeStub) ExpireStaleOrders(ctx context.Context, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	s.Sweeps++
	s.mu.Unlock()
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, ttl)
	}
	return 0, nil
}

// SweepCount returns how many sweeps ran.
func (s *SweeperFacadeStub) SweepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Sweeps
}
