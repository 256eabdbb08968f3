package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/khangtran/keygate/internal/config"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	model.DefaultCatalog,
	newContentParser,
	NewOrderUseCase,
	newReconcileUseCase,
)

func newContentParser(cfg *config.Config) (*ContentParser, error) {
	return NewContentParser(cfg.VendorPrefix, cfg.OrderMarker)
}

type reconcileParams struct {
	fx.In

	Orders  repository.OrderRepository
	Parser  *ContentParser
	Issuer  KeyIssuer
	Catalog model.Catalog
	Config  *config.Config
	Logger  *slog.Logger
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Orders, p.Parser, p.Issuer, p.Catalog, p.Config.BankAccount, p.Config.DefaultKeyHours, p.Logger)
}
