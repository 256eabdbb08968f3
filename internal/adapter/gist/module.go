package gist

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/khangtran/keygate/internal/config"
)

// Module exposes the gist key-issuer client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GistAPIURL, p.Config.GistToken, p.Config.GistID, p.Logger)
}
