package router

import "go.uber.org/fx"

// Module provides the configured gin engine to fx graphs.
var Module = fx.Provide(Setup)
