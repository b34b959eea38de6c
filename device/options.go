package device

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/msptools/go-msplink/transport"
)

// DefaultReadRetries is the default per-read retry budget handed to the
// transport.
const DefaultReadRetries = 3

// Config holds the per-device configuration.
type Config struct {
	// Version is the MSP protocol version used for requests, 1 or 2.
	Version int

	// ReadRetries is the transport read retry budget. Must be positive.
	ReadRetries int

	// BaudRate is the serial line speed used by Open.
	BaudRate int

	// Logger receives lifecycle and frame events. Defaults to a no-op
	// logger.
	Logger zerolog.Logger
}

func defaultConfig() Config {
	return Config{
		Version:     1,
		ReadRetries: DefaultReadRetries,
		BaudRate:    transport.DefaultBaudRate,
		Logger:      zerolog.Nop(),
	}
}

// validate is checked when the link is opened, not when options are
// applied, so a misconfigured Device fails loudly instead of silently
// falling back to defaults.
func (c Config) validate() error {
	if c.Version != 1 && c.Version != 2 {
		return fmt.Errorf("msp version must be 1 or 2 (got %d)", c.Version)
	}
	if c.ReadRetries <= 0 {
		return fmt.Errorf("read retries must be positive (got %d, default is %d)", c.ReadRetries, DefaultReadRetries)
	}
	return nil
}

// Option is a functional option for configuring a Device.
type Option func(*Config)

// WithVersion selects the MSP protocol version used for requests.
//
// Example:
//
//	dev := device.New(device.WithVersion(2))
func WithVersion(version int) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithReadRetries sets the transport read retry budget.
//
// Example:
//
//	dev := device.New(device.WithReadRetries(5))
func WithReadRetries(retries int) Option {
	return func(c *Config) {
		c.ReadRetries = retries
	}
}

// WithBaudRate sets the serial line speed used by Open.
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		c.BaudRate = baud
	}
}

// WithLogger sets the logger for device operations.
//
// Example:
//
//	dev := device.New(device.WithLogger(log.With().Str("port", path).Logger()))
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

type requestConfig struct {
	flag    byte
	wantAck bool
}

// RequestOption adjusts a single Set or Get call.
type RequestOption func(*requestConfig)

// WithFlag sets the v2 flag byte for this request. Ignored on v1 links,
// which have no flag field.
func WithFlag(flag byte) RequestOption {
	return func(r *requestConfig) {
		r.flag = flag
	}
}

// WithoutAck makes Set return immediately after a successful send instead
// of awaiting the device's acknowledgment. Use with care: devices sharing
// one buffer between directions can misbehave when the host does not
// consume the response. Get ignores this option.
func WithoutAck() RequestOption {
	return func(r *requestConfig) {
		r.wantAck = false
	}
}
