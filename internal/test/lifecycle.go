package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered during tests so they can be
// invoked manually.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals when a component requested application shutdown.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test without blocking.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
