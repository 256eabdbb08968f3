package di

import (
	"go.uber.org/fx"

	"github.com/khangtran/keygate/internal/adapter/gist"
	"github.com/khangtran/keygate/internal/app"
	"github.com/khangtran/keygate/internal/config"
	"github.com/khangtran/keygate/internal/logger"
	"github.com/khangtran/keygate/internal/pkg/ids"
	"github.com/khangtran/keygate/internal/server/http/handlers"
	"github.com/khangtran/keygate/internal/server/http/router"
	"github.com/khangtran/keygate/internal/storage/postgres"
	"github.com/khangtran/keygate/internal/usecase"
)

// Module assembles the full application graph. Extra options let tests swap
// infrastructure pieces for stubs.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		ids.Module,
		postgres.Module,
		gist.Module,
		usecase.Module,
		fx.Provide(func(client gist.Client) usecase.KeyIssuer { return client }),
		fx.Provide(func(facade *app.ShopFacade) handlers.ShopFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
