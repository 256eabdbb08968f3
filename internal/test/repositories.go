package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
)

// OrderRepositoryStub allows tests to customize behaviour per method.
type OrderRepositoryStub struct {
	CreateFn                   func(context.Context, *model.Order) error
	GetByIDFn                  func(context.Context, string) (*model.Order, error)
	FindPendingByIDAndAmountFn func(context.Context, string, int64) (*model.Order, error)
	ClaimFn                    func(context.Context, string) error
	CommitFulfillmentFn        func(context.Context, string, string, model.TransactionMeta) error
	ReleaseClaimFn             func(context.Context, string) error
	ListFn                     func(context.Context) ([]model.Order, error)
	ExpireStaleFn              func(context.Context, time.Time) (int64, error)
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) FindPendingByIDAndAmount(ctx context.Context, id string, amount int64) (*model.Order, error) {
	if s.FindPendingByIDAndAmountFn != nil {
		return s.FindPendingByIDAndAmountFn(ctx, id, amount)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) Claim(ctx context.Context, id string) error {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, id)
	}
	return nil
}

func (s *OrderRepositoryStub) CommitFulfillment(ctx context.Context, id, key string, meta model.TransactionMeta) error {
	if s.CommitFulfillmentFn != nil {
		return s.CommitFulfillmentFn(ctx, id, key, meta)
	}
	return nil
}

func (s *OrderRepositoryStub) ReleaseClaim(ctx context.Context, id string) error {
	if s.ReleaseClaimFn != nil {
		return s.ReleaseClaimFn(ctx, id)
	}
	return nil
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.ExpireStaleFn != nil {
		return s.ExpireStaleFn(ctx, cutoff)
	}
	return 0, nil
}

// InMemoryOrderRepository implements the repository contract with real
// compare-and-set claim semantics behind a mutex, so concurrency properties
// can be exercised without a database.
type InMemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

// NewInMemoryOrderRepository constructs an empty in-memory repository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: make(map[string]*model.Order)}
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *InMemoryOrderRepository) FindPendingByIDAndAmount(ctx context.Context, id string, amount int64) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != model.OrderStatusPending || order.Amount != amount {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *InMemoryOrderRepository) Claim(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != model.OrderStatusPending {
		return domainErrors.ErrAlreadyClaimed
	}
	order.Status = model.OrderStatusClaimed
	return nil
}

func (r *InMemoryOrderRepository) CommitFulfillment(ctx context.Context, id, key string, meta model.TransactionMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != model.OrderStatusClaimed {
		return domainErrors.ErrNotClaimed
	}
	now := time.Now().UTC()
	order.Status = model.OrderStatusFulfilled
	order.Key = &key
	order.FulfilledAt = &now
	order.Gateway = &meta.Gateway
	order.TransactionDate = &meta.TransactionDate
	order.ReferenceCode = &meta.ReferenceCode
	order.PaidAmount = &meta.Amount
	return nil
}

func (r *InMemoryOrderRepository) ReleaseClaim(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != model.OrderStatusClaimed {
		return domainErrors.ErrNotClaimed
	}
	order.Status = model.OrderStatusPending
	return nil
}

func (r *InMemoryOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]model.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *InMemoryOrderRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired int64
	for _, order := range r.orders {
		if order.Status == model.OrderStatusPending && order.CreatedAt.Before(cutoff) {
			order.Status = model.OrderStatusExpired
			expired++
		}
	}
	return expired, nil
}

// SetCreatedAt backdates an order so expiry behaviour can be exercised.
func (r *InMemoryOrderRepository) SetCreatedAt(id string, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order, ok := r.orders[id]; ok {
		order.CreatedAt = createdAt
	}
}
