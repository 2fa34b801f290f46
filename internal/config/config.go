// Package config holds the small set of tunables shared across the
// pipeline: the scanner's interpolation-depth ceiling and the VM's
// step/call-stack safety valves (spec §4.2/§4.5/§4.6). It is populated from
// VUUR_-prefixed environment variables via caarlos0/env, the same way the
// teacher's own host configuration (builds, flags) favors struct tags over
// hand-rolled os.Getenv calls.
package config

import "github.com/caarlos0/env/v6"

// Config is the full set of environment-tunable limits. Zero-value
// defaults are filled in by Load, matching the "<= 0 means no limit"
// convention used throughout lang/machine.Thread.
type Config struct {
	// MaxInterpDepth bounds string-interpolation nesting depth in the
	// scanner, per spec §4.2. Default 8.
	MaxInterpDepth int `env:"MAX_INTERP_DEPTH" envDefault:"8"`

	// MaxCallStackDepth bounds nested CALLs in the VM. 0 means no limit.
	MaxCallStackDepth int `env:"MAX_CALL_STACK_DEPTH" envDefault:"0"`

	// MaxSteps bounds the number of instructions a fiber may dispatch
	// before it is halted as a runaway program. 0 means no limit.
	MaxSteps int `env:"MAX_STEPS" envDefault:"0"`
}

// Load reads Config from the environment, prefixing every variable with
// VUUR_ (e.g. VUUR_MAX_STEPS), and applying the envDefault tags above
// where a variable is unset.
func Load() (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "VUUR_"}
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
