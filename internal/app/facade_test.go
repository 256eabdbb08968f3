package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/khangtran/keygate/internal/config"
	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/pkg/ids"
	testhelpers "github.com/khangtran/keygate/internal/test"
	"github.com/khangtran/keygate/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		BankAccount:     "102881164268",
		BankName:        "ACB",
		VendorPrefix:    "ARESTOOL",
		OrderMarker:     "DH",
		DefaultKeyHours: 24,
		OrderTTL:        24 * time.Hour,
	}
}

func newTestFacade(t *testing.T, cfg *config.Config, issuer usecase.KeyIssuer) (*ShopFacade, *testhelpers.InMemoryOrderRepository) {
	t.Helper()
	repo := testhelpers.NewInMemoryOrderRepository()
	gen, err := ids.NewGenerator(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalog := model.DefaultCatalog()
	orders := usecase.NewOrderUseCase(repo, gen, catalog)

	parser, err := usecase.NewContentParser(cfg.VendorPrefix, cfg.OrderMarker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reconciler := usecase.NewReconcileUseCase(repo, parser, issuer, catalog, cfg.BankAccount, cfg.DefaultKeyHours, testLogger())

	return NewShopFacade(orders, reconciler, cfg), repo
}

func TestCreateOrderBuildsQRURL(t *testing.T) {
	cfg := testConfig()
	facade, _ := newTestFacade(t, cfg, &testhelpers.KeyIssuerStub{})

	order, qrURL, err := facade.CreateOrder(context.Background(), "7day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Amount != 20000 {
		t.Fatalf("expected amount 20000, got %d", order.Amount)
	}
	if !strings.HasPrefix(qrURL, "https://qr.sepay.vn/img?") {
		t.Fatalf("unexpected qr url %q", qrURL)
	}
	for _, fragment := range []string{"acc=102881164268", "bank=ACB", "amount=20000"} {
		if !strings.Contains(qrURL, fragment) {
			t.Fatalf("expected %q in qr url %q", fragment, qrURL)
		}
	}
	if !strings.Contains(qrURL, "ARESTOOL+DH"+order.ID) {
		t.Fatalf("expected transfer description with order id in %q", qrURL)
	}
}

func TestCreateOrderWithoutVendorPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.VendorPrefix = ""
	facade, _ := newTestFacade(t, cfg, &testhelpers.KeyIssuerStub{})

	order, qrURL, err := facade.CreateOrder(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(qrURL, "des=DH"+order.ID) {
		t.Fatalf("expected bare marker description in %q", qrURL)
	}
}

func TestCreateOrderUnknownPackage(t *testing.T) {
	facade, _ := newTestFacade(t, testConfig(), &testhelpers.KeyIssuerStub{})
	if _, _, err := facade.CreateOrder(context.Background(), "lifetime"); !errors.Is(err, domainErrors.ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	cfg := testConfig()
	issuer := &testhelpers.KeyIssuerStub{}
	facade, _ := newTestFacade(t, cfg, issuer)
	ctx := context.Background()

	order, _, err := facade.CreateOrder(ctx, "7day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := facade.OrderStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending.PublicStatus() != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", pending.PublicStatus())
	}

	tx := model.InboundTransaction{
		Gateway:         "ACB",
		TransactionDate: "2026-08-31 10:00:00",
		AccountNumber:   cfg.BankAccount,
		TransferType:    model.TransferTypeIn,
		Amount:          order.Amount,
		Content:         "ARESTOOL DH" + order.ID,
		ReferenceCode:   "FT123",
	}
	result, err := facade.Reconcile(ctx, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != model.ReconcileFulfilled {
		t.Fatalf("expected fulfilled outcome, got %v (%s)", result.Outcome, result.Reason)
	}

	// Redelivery of the same transaction must not issue another key.
	dup, err := facade.Reconcile(ctx, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup.Outcome != model.ReconcileRejected {
		t.Fatalf("expected rejected outcome, got %v", dup.Outcome)
	}
	if issuer.IssuedCalls() != 1 {
		t.Fatalf("expected one issued key, got %d", issuer.IssuedCalls())
	}

	fulfilled, err := facade.OrderStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fulfilled.Status != model.OrderStatusFulfilled || fulfilled.Key == nil {
		t.Fatalf("expected fulfilled order with key, got %+v", fulfilled)
	}
}

func TestExpireStaleOrders(t *testing.T) {
	facade, repo := newTestFacade(t, testConfig(), &testhelpers.KeyIssuerStub{})
	ctx := context.Background()

	order, _, err := facade.CreateOrder(ctx, "1day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.SetCreatedAt(order.ID, time.Now().UTC().Add(-48*time.Hour))

	expired, err := facade.ExpireStaleOrders(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected one expired order, got %d", expired)
	}

	stale, err := facade.OrderStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale.Status != model.OrderStatusExpired {
		t.Fatalf("expected expired status, got %s", stale.Status)
	}
}

func TestOrdersListing(t *testing.T) {
	facade, _ := newTestFacade(t, testConfig(), &testhelpers.KeyIssuerStub{})
	ctx := context.Background()

	for _, pkg := range []string{"test", "1day", "30day"} {
		if _, _, err := facade.CreateOrder(ctx, pkg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	orders, err := facade.Orders(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
}
