// ABOUTME: Runtime options with defaults and validation
// ABOUTME: Compile-time defaults only; the CLI takes no flags or config file
package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Options holds the player's runtime tuning knobs.
type Options struct {
	// PollIntervalMs bounds how long the command loop waits between
	// wake-ups, so commands are recognized within that latency.
	PollIntervalMs int `default:"250" validate:"gt=0,lte=1000"`

	// FramesPerBuffer is passed to the output backend; zero lets the
	// device pick its preferred callback period.
	FramesPerBuffer int `default:"0" validate:"gte=0,lte=16384"`

	// LogLevel controls the global logger.
	LogLevel string `default:"info" validate:"oneof=debug info warn error"`
}

// PollInterval returns the command loop wait interval as a duration.
func (o *Options) PollInterval() time.Duration {
	return time.Duration(o.PollIntervalMs) * time.Millisecond
}

// Default builds the validated default options.
func Default() (*Options, error) {
	var opts Options
	if err := defaults.Set(&opts); err != nil {
		return nil, errors.Wrap(err, "apply default options")
	}
	if err := validator.New().Struct(&opts); err != nil {
		return nil, errors.Wrap(err, "validate options")
	}
	return &opts, nil
}
