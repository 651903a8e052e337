package cmd

import (
	"github.com/mstoykov/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"

	"github.com/igaisin/playwright/cmd/state"
	"github.com/igaisin/playwright/errext"
	"github.com/igaisin/playwright/errext/exitcodes"
	"github.com/igaisin/playwright/locatorgen"
)

// Config holds the translation options that can arrive through CLI flags, the
// environment or the built-in defaults.
type Config struct {
	Lang     null.String `json:"lang" envconfig:"PLAYWRIGHT_LANG"`
	Frame    null.Bool   `json:"frame" envconfig:"PLAYWRIGHT_FRAME"`
	Tolerant null.Bool   `json:"tolerant" envconfig:"PLAYWRIGHT_TOLERANT"`
}

// NewConfig returns the default configuration: JavaScript output, page
// receivers, strict error handling.
func NewConfig() Config {
	return Config{
		Lang: null.NewString(string(locatorgen.JavaScript), false),
	}
}

// Apply overwrites the receiver's fields with the valid fields of cfg and
// returns the result.
func (c Config) Apply(cfg Config) Config {
	if cfg.Lang.Valid {
		c.Lang = cfg.Lang
	}
	if cfg.Frame.Valid {
		c.Frame = cfg.Frame
	}
	if cfg.Tolerant.Valid {
		c.Tolerant = cfg.Tolerant
	}
	return c
}

// Gets configuration from CLI flags.
func getConfig(flags *pflag.FlagSet) Config {
	return Config{
		Lang:     getNullString(flags, "lang"),
		Frame:    getNullBool(flags, "frame"),
		Tolerant: getNullBool(flags, "tolerant"),
	}
}

// Reads the configuration from the environment variables.
func readEnvConfig(gs *state.GlobalState) (Config, error) {
	conf := Config{}
	err := envconfig.Process("", &conf, func(key string) (string, bool) {
		v, ok := gs.Env[key]
		return v, ok
	})
	return conf, err
}

// Assemble the final consolidated configuration from all of the different
// sources:
//   - start with the built-in defaults
//   - apply the environment variables
//   - apply the CLI flags, they have the highest priority
func getConsolidatedConfig(gs *state.GlobalState, cliConf Config) (Config, error) {
	conf := NewConfig()

	envConf, err := readEnvConfig(gs)
	if err != nil {
		return conf, errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}

	return conf.Apply(envConf).Apply(cliConf), nil
}
