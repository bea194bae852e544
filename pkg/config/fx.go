package config

import (
	"os"

	"github.com/pseudomuto/sqlpack/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads sqlpack.yaml from the working directory when it exists. Projects without
	// one get the default configuration so every command can run anywhere.
	func() (*Config, error) {
		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
))
