package ids

import "go.uber.org/fx"

// Module wires the order id generator into fx graphs.
var Module = fx.Provide(func() (*Generator, error) {
	return NewGenerator(1)
})
