package app

import (
	"context"
	"time"

	"github.com/khangtran/keygate/internal/config"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/pkg/qr"
	"github.com/khangtran/keygate/internal/usecase"
)

// ShopFacade bundles the shop operations behind one application surface.
type ShopFacade struct {
	orders     *usecase.OrderUseCase
	reconciler *usecase.ReconcileUseCase
	cfg        *config.Config
}

// NewShopFacade constructs ShopFacade.
func NewShopFacade(orders *usecase.OrderUseCase, reconciler *usecase.ReconcileUseCase, cfg *config.Config) *ShopFacade {
	return &ShopFacade{orders: orders, reconciler: reconciler, cfg: cfg}
}

// CreateOrder registers a pending order and returns it together with the QR
// image URL the buyer scans to pay.
func (f *ShopFacade) CreateOrder(ctx context.Context, packageID string) (*model.Order, string, error) {
	order, err := f.orders.Create(ctx, packageID)
	if err != nil {
		return nil, "", err
	}
	qrURL := qr.PaymentURL(f.cfg.BankName, f.cfg.BankAccount, order.Amount, f.transferDescription(order.ID))
	return order, qrURL, nil
}

// transferDescription embeds the order id into the bank transfer description
// using the same prefix and marker the content parser is compiled from, so
// creation and reconciliation can never drift apart.
func (f *ShopFacade) transferDescription(orderID string) string {
	if f.cfg.VendorPrefix == "" {
		return f.cfg.OrderMarker + orderID
	}
	return f.cfg.VendorPrefix + " " + f.cfg.OrderMarker + orderID
}

// OrderStatus returns the order for a status poll.
func (f *ShopFacade) OrderStatus(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

// Orders returns all orders for the admin listing.
func (f *ShopFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

// Reconcile runs one inbound transaction through the engine.
func (f *ShopFacade) Reconcile(ctx context.Context, tx model.InboundTransaction) (*model.ReconcileResult, error) {
	return f.reconciler.Reconcile(ctx, tx)
}

// ExpireStaleOrders expires pending orders older than ttl.
func (f *ShopFacade) ExpireStaleOrders(ctx context.Context, ttl time.Duration) (int64, error) {
	return f.orders.ExpireStale(ctx, ttl)
}
