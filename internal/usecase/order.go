package usecase

import (
	"context"
	"time"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/domain/repository"
	"github.com/khangtran/keygate/internal/pkg/ids"
)

// OrderUseCase encapsulates order lifecycle logic outside reconciliation.
type OrderUseCase struct {
	orders  repository.OrderRepository
	ids     *ids.Generator
	catalog model.Catalog
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, gen *ids.Generator, catalog model.Catalog) *OrderUseCase {
	return &OrderUseCase{orders: orders, ids: gen, catalog: catalog}
}

// Create registers a new pending order for the given package. The amount is
// always the package price; clients never supply it.
func (u *OrderUseCase) Create(ctx context.Context, packageID string) (*model.Order, error) {
	pkg, ok := u.catalog.Get(packageID)
	if !ok {
		return nil, domainErrors.ErrUnknownPackage
	}

	order := &model.Order{
		ID:        u.ids.NextOrderID(),
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns the order for a status query. Purely read-only.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns all orders, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// ExpireStale marks pending orders older than ttl as expired.
func (u *OrderUseCase) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	return u.orders.ExpireStale(ctx, time.Now().UTC().Add(-ttl))
}
