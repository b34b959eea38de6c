package transport

import (
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// Defaults matching the reference serial line parameters.
const (
	// DefaultBaudRate is the standard MSP link speed.
	DefaultBaudRate = 115200

	// DefaultReadRetries is the per-call read retry budget.
	DefaultReadRetries = 3

	// DefaultReadTimeout is the per-read timeout. A read returning zero
	// bytes after this interval is a retry, not an error.
	DefaultReadTimeout = 100 * time.Millisecond
)

// Port is the subset of go.bug.st/serial.Port the engine needs. It is
// satisfied by a real serial port and by in-memory fakes in tests, so the
// framing layer never depends on tty hardware.
type Port interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)

	// Drain blocks until all written bytes have been transmitted.
	Drain() error

	// ResetInputBuffer discards bytes received but not yet read.
	ResetInputBuffer() error

	Close() error
}

// Config holds the transport configuration.
type Config struct {
	// BaudRate is the serial line speed. Ignored by NewFromPort.
	BaudRate int

	// ReadRetries is the number of read attempts ReadFull makes before
	// giving up. Each attempt may legitimately return zero bytes.
	ReadRetries int

	// ReadTimeout is the per-read timeout configured on the port.
	// Ignored by NewFromPort.
	ReadTimeout time.Duration

	// Logger receives debug events. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func defaultConfig() Config {
	return Config{
		BaudRate:    DefaultBaudRate,
		ReadRetries: DefaultReadRetries,
		ReadTimeout: DefaultReadTimeout,
		Logger:      zerolog.Nop(),
	}
}

// Option is a functional option for configuring the transport.
type Option func(*Config)

// WithBaudRate sets the serial line speed. Non-positive values are ignored.
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.BaudRate = baud
		}
	}
}

// WithReadRetries sets the read retry budget. Non-positive values are
// ignored.
func WithReadRetries(retries int) Option {
	return func(c *Config) {
		if retries > 0 {
			c.ReadRetries = retries
		}
	}
}

// WithReadTimeout sets the per-read timeout. Non-positive values are
// ignored.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithLogger sets the logger used for transport debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Serial provides the reliable primitives the framing layer runs on:
// exact bounded-retry reads, all-or-nothing writes, transmit drain, and
// input flush, over one open port.
//
// Serial performs no internal locking. The session layer serializes all
// access to a given Serial.
type Serial struct {
	port Port
	cfg  Config
	log  zerolog.Logger
}

// Open acquires the serial device at path and configures it for MSP: raw
// mode, 8 data bits, no parity, one stop bit, no flow control, and the
// configured per-read timeout. Any failure during configuration closes the
// port and returns a SyscallError wrapping the cause.
func Open(path string, opts ...Option) (*Serial, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, &SyscallError{Op: "open", Err: err}
	}

	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, &SyscallError{Op: "configure", Err: err}
	}

	cfg.Logger.Debug().
		Str("path", path).
		Int("baud", cfg.BaudRate).
		Dur("read_timeout", cfg.ReadTimeout).
		Int("read_retries", cfg.ReadRetries).
		Msg("serial port open")

	return &Serial{port: port, cfg: cfg, log: cfg.Logger}, nil
}

// NewFromPort wraps an already-open port. It applies no line configuration;
// the caller is responsible for baud rate and read timeout. Intended for
// custom hardware adapters and tests.
func NewFromPort(port Port, opts ...Option) *Serial {
	if port == nil {
		panic("port cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Serial{port: port, cfg: cfg, log: cfg.Logger}
}

// Close releases the port. The handle is considered released even when the
// close syscall fails; the error is still reported.
func (s *Serial) Close() error {
	if err := s.port.Close(); err != nil {
		return &SyscallError{Op: "close", Err: err}
	}
	return nil
}

// WriteFull writes all of p or fails. A short write yields
// TxIncompleteError and is not re-issued.
func (s *Serial) WriteFull(p []byte) error {
	n, err := s.port.Write(p)
	if err != nil {
		return &SyscallError{Op: "write", Err: err}
	}
	if n != len(p) {
		return &TxIncompleteError{Wrote: n, Want: len(p)}
	}
	return nil
}

// ReadFull fills p completely or fails. It issues up to the configured
// number of reads, accumulating whatever arrives; a read returning zero
// bytes (timeout) consumes a retry without being an error. Exhausting the
// budget yields RxIncompleteError. An OS-level read error yields
// SyscallError immediately.
//
// A zero-length read succeeds immediately without touching the port.
func (s *Serial) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	remaining := p
	for i := 0; i < s.cfg.ReadRetries; i++ {
		n, err := s.port.Read(remaining)
		if err != nil {
			return &SyscallError{Op: "read", Err: err}
		}
		remaining = remaining[n:]
		if len(remaining) == 0 {
			return nil
		}
	}

	return &RxIncompleteError{Read: len(p) - len(remaining), Want: len(p)}
}

// Drain blocks until all previously written bytes have been physically
// transmitted.
func (s *Serial) Drain() error {
	if err := s.port.Drain(); err != nil {
		return &SyscallError{Op: "drain", Err: err}
	}
	return nil
}

// FlushInput discards any bytes buffered in the input direction. Issued
// before each request so stale bytes from an earlier, possibly aborted
// exchange cannot be misread as the new response.
func (s *Serial) FlushInput() error {
	if err := s.port.ResetInputBuffer(); err != nil {
		return &SyscallError{Op: "flush", Err: err}
	}
	return nil
}
