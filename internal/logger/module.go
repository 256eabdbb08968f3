package logger

import "go.uber.org/fx"

// Module provides the shared slog logger to fx graphs.
var Module = fx.Provide(New)
