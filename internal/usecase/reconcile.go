package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/domain/repository"
)

// Rejection reasons for transactions that looked relevant but matched no
// fulfillable order.
const (
	ReasonUnparseableContent = "unparseable content"
	ReasonNoMatchingOrder    = "no matching pending order"
	ReasonAlreadyFulfilled   = "already fulfilled"
)

// KeyIssuer mints an activation key valid for the given number of hours. The
// call may be slow and is not idempotent, so the engine invokes it at most
// once per successful claim.
type KeyIssuer interface {
	IssueKey(ctx context.Context, hours int, note string) (string, error)
}

// ReconcileUseCase matches inbound bank transactions to pending orders and
// fulfills them exactly once.
type ReconcileUseCase struct {
	orders          repository.OrderRepository
	parser          *ContentParser
	issuer          KeyIssuer
	catalog         model.Catalog
	expectedAccount string
	defaultKeyHours int
	logger          *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(
	orders repository.OrderRepository,
	parser *ContentParser,
	issuer KeyIssuer,
	catalog model.Catalog,
	expectedAccount string,
	defaultKeyHours int,
	logger *slog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		orders:          orders,
		parser:          parser,
		issuer:          issuer,
		catalog:         catalog,
		expectedAccount: expectedAccount,
		defaultKeyHours: defaultKeyHours,
		logger:          logger,
	}
}

// Reconcile runs one transaction through the pipeline: validate, parse, match
// a unique pending order, claim it, issue a key, commit. A non-nil error
// means a transient failure the gateway should retry; every business outcome
// comes back as a result with a nil error.
//
// The claim is the only synchronization point. It happens before the issuer
// call and is rolled back if issuance or commit fails, so the order is never
// left stuck and the store is never locked while the gateway is in flight.
func (u *ReconcileUseCase) Reconcile(ctx context.Context, tx model.InboundTransaction) (*model.ReconcileResult, error) {
	if ok, reason := ValidateTransaction(tx, u.expectedAccount); !ok {
		return &model.ReconcileResult{Outcome: model.ReconcileIgnored, Reason: reason}, nil
	}

	orderID, ok := u.parser.ExtractOrderID(tx.Content)
	if !ok {
		u.logger.Warn("cannot extract order id from transfer content",
			slog.String("content", tx.Content),
			slog.String("reference", tx.ReferenceCode),
		)
		return &model.ReconcileResult{Outcome: model.ReconcileRejected, Reason: ReasonUnparseableContent}, nil
	}

	order, err := u.orders.FindPendingByIDAndAmount(ctx, orderID, tx.Amount)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return u.classifyMiss(ctx, orderID, tx), nil
		}
		return nil, fmt.Errorf("find pending order: %w", err)
	}

	if err := u.orders.Claim(ctx, order.ID); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyClaimed) {
			// A concurrent or duplicate delivery won the claim.
			return &model.ReconcileResult{Outcome: model.ReconcileRejected, Reason: ReasonAlreadyFulfilled, OrderID: order.ID}, nil
		}
		return nil, fmt.Errorf("claim order: %w", err)
	}

	hours := u.defaultKeyHours
	if pkg, known := u.catalog.Get(order.PackageID); known {
		hours = pkg.DurationHours
	} else {
		u.logger.Warn("order references unknown package, using default key duration",
			slog.String("order", order.ID),
			slog.String("package", order.PackageID),
			slog.Int("hours", hours),
		)
	}

	key, err := u.issuer.IssueKey(ctx, hours, "Order "+order.ID)
	if err != nil {
		u.releaseClaim(ctx, order.ID)
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrKeyIssuance, err)
	}

	meta := model.TransactionMeta{
		Gateway:         tx.Gateway,
		TransactionDate: tx.TransactionDate,
		ReferenceCode:   tx.ReferenceCode,
		Amount:          tx.Amount,
	}
	if err := u.orders.CommitFulfillment(ctx, order.ID, key, meta); err != nil {
		u.releaseClaim(ctx, order.ID)
		return nil, fmt.Errorf("commit fulfillment: %w", err)
	}

	u.logger.Info("payment reconciled",
		slog.String("order", order.ID),
		slog.Int64("amount", tx.Amount),
		slog.String("reference", tx.ReferenceCode),
	)
	return &model.ReconcileResult{Outcome: model.ReconcileFulfilled, OrderID: order.ID, Key: key}, nil
}

// classifyMiss distinguishes a duplicate delivery for an order that was
// already paid from a transaction that matches nothing. Read-only; the
// matching itself already happened in one query against current state.
func (u *ReconcileUseCase) classifyMiss(ctx context.Context, orderID string, tx model.InboundTransaction) *model.ReconcileResult {
	existing, err := u.orders.GetByID(ctx, orderID)
	if err == nil && existing.Amount == tx.Amount &&
		(existing.Status == model.OrderStatusFulfilled || existing.Status == model.OrderStatusClaimed) {
		return &model.ReconcileResult{Outcome: model.ReconcileRejected, Reason: ReasonAlreadyFulfilled, OrderID: existing.ID}
	}

	u.logger.Warn("no matching pending order",
		slog.String("order", orderID),
		slog.Int64("amount", tx.Amount),
		slog.String("reference", tx.ReferenceCode),
	)
	return &model.ReconcileResult{Outcome: model.ReconcileRejected, Reason: ReasonNoMatchingOrder}
}

// releaseClaim reverts a claimed order to pending. A failed release leaves
// the order unfulfillable, which is the one condition worth alerting on.
func (u *ReconcileUseCase) releaseClaim(ctx context.Context, id string) {
	if err := u.orders.ReleaseClaim(ctx, id); err != nil {
		u.logger.Error("release claim failed, order stuck in claimed state",
			slog.String("order", id),
			slog.String("error", err.Error()),
		)
	}
}
