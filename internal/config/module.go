package config

import "go.uber.org/fx"

// Module provides configuration to the fx container.
var Module = fx.Provide(Load)
