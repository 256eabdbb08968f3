package handlers

import (
	"context"

	"github.com/khangtran/keygate/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, packageID string) (*model.Order, string, error)
	OrderStatus(ctx context.Context, orderID string) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
}

// ReconcileFacade runs one inbound transaction through the reconciliation
// engine.
type ReconcileFacade interface {
	Reconcile(ctx context.Context, tx model.InboundTransaction) (*model.ReconcileResult, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	OrderFacade
	ReconcileFacade
}
