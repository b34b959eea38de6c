package device

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/msptools/go-msplink/protocol"
	"github.com/msptools/go-msplink/transport"
)

// Device is one MSP session: a configured serial link plus the scratch
// receive buffer, driven through request/response cycles.
//
// Device is safe for concurrent use. A single mutex spans the whole of
// every public operation, not just the state mutation: bytes already sent
// and a partially read response are not safely interleavable with any
// other operation on the same link. A second caller therefore blocks for
// up to the full duration of the first caller's I/O. Distinct Devices are
// fully independent.
type Device struct {
	mu   sync.Mutex
	cfg  Config
	link *transport.Serial
	buf  []byte
	log  zerolog.Logger
}

// New creates a Device with the given options. The link starts closed;
// call Open before issuing requests.
//
// Example:
//
//	dev := device.New(device.WithVersion(2), device.WithReadRetries(5))
//	if err := dev.Open("/dev/ttyACM0"); err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
func New(opts ...Option) *Device {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		cfg: cfg,
		buf: make([]byte, protocol.ReadBufferSize),
		log: cfg.Logger,
	}
}

// Open acquires and configures the serial device at path. It fails with
// ErrAlreadyOpen if the link is already open, leaving the existing link
// untouched, and validates the configured version and retry budget before
// touching the port.
func (d *Device) Open(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.link != nil {
		return ErrAlreadyOpen
	}
	if err := d.cfg.validate(); err != nil {
		return err
	}

	link, err := transport.Open(path,
		transport.WithBaudRate(d.cfg.BaudRate),
		transport.WithReadRetries(d.cfg.ReadRetries),
		transport.WithLogger(d.log),
	)
	if err != nil {
		return err
	}

	d.link = link
	d.log.Info().
		Str("path", path).
		Int("baud", d.cfg.BaudRate).
		Int("msp_version", d.cfg.Version).
		Msg("msp link open")
	return nil
}

// OpenPort attaches an already-open port instead of acquiring a serial
// device. The port's line configuration is the caller's responsibility.
// Intended for custom hardware adapters and tests.
func (d *Device) OpenPort(port transport.Port) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.link != nil {
		return ErrAlreadyOpen
	}
	if err := d.cfg.validate(); err != nil {
		return err
	}

	d.link = transport.NewFromPort(port,
		transport.WithReadRetries(d.cfg.ReadRetries),
		transport.WithLogger(d.log),
	)
	return nil
}

// Close releases the link. Closing an already-closed device is not an
// error; it logs a warning and returns nil. The handle is considered
// released even when the underlying close fails, so a failed Close never
// leaks the link or wedges the device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.link == nil {
		d.log.Warn().Msg("closing an already closed msp link")
		return nil
	}

	link := d.link
	d.link = nil
	if err := link.Close(); err != nil {
		return err
	}

	d.log.Info().Msg("msp link closed")
	return nil
}

// Set sends function with payload to the device and, unless WithoutAck is
// given, awaits and returns the acknowledging response. With WithoutAck it
// returns (nil, nil) as soon as the frame is sent.
//
// On a v1 link, function ids above 255 fail with *FunctionRangeError
// before anything is sent. Checksum failures and device rejections
// propagate as *protocol.ChecksumMismatchError and *protocol.NackError,
// each carrying the decoded response.
func (d *Device) Set(function uint16, payload []byte, opts ...RequestOption) (*protocol.Packet, error) {
	req := requestConfig{wantAck: true}
	for _, opt := range opts {
		opt(&req)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.link == nil {
		return nil, ErrNotOpen
	}

	if err := d.send(function, payload, req.flag); err != nil {
		return nil, err
	}
	if !req.wantAck {
		return nil, nil
	}
	return d.receive()
}

// Get requests function from the device and returns the decoded response.
// The request carries an empty payload; WithFlag sets the v2 flag byte.
func (d *Device) Get(function uint16, opts ...RequestOption) (*protocol.Packet, error) {
	req := requestConfig{wantAck: true}
	for _, opt := range opts {
		opt(&req)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.link == nil {
		return nil, ErrNotOpen
	}

	if err := d.send(function, nil, req.flag); err != nil {
		return nil, err
	}
	return d.receive()
}

// send discards stale input and serializes one request frame in the
// session's protocol version.
func (d *Device) send(function uint16, payload []byte, flag byte) error {
	if err := d.link.FlushInput(); err != nil {
		return err
	}

	d.log.Debug().
		Uint16("function", function).
		Int("payload_len", len(payload)).
		Int("msp_version", d.cfg.Version).
		Msg("sending request")

	switch d.cfg.Version {
	case 1:
		if function > protocol.MaxV1Function {
			return &FunctionRangeError{Function: function}
		}
		return protocol.WriteV1(d.link, uint8(function), payload)
	case 2:
		return protocol.WriteV2(d.link, flag, function, payload)
	default:
		// validate() runs before the link opens, so this is unreachable.
		return protocol.ErrInternal
	}
}

// receive decodes one response frame into the session's scratch buffer.
func (d *Device) receive() (*protocol.Packet, error) {
	pkt, err := protocol.ReadPacket(d.link, d.buf)
	if err != nil {
		return nil, err
	}

	d.log.Debug().
		Uint16("function", pkt.Function).
		Int("payload_len", len(pkt.Payload)).
		Stringer("direction", pkt.Direction).
		Msg("received response")
	return pkt, nil
}
