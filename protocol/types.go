package protocol

import "fmt"

// Version selects the MSP wire format of a frame.
type Version byte

const (
	// V1 is the original MSP format: 8-bit function id, XOR checksum,
	// optional jumbo length extension.
	V1 Version = 'M'

	// V2 is the extended format: flag byte, 16-bit function id, 16-bit
	// payload length, CRC-8/DVB-S2 checksum.
	V2 Version = 'X'
)

// IsValid reports whether v is a known version tag.
func (v Version) IsValid() bool {
	return v == V1 || v == V2
}

func (v Version) String() string {
	switch v {
	case V1:
		return "MSPv1"
	case V2:
		return "MSPv2"
	default:
		return fmt.Sprintf("Version(0x%02X)", byte(v))
	}
}

// Direction is the single wire character describing which way a frame is
// travelling, or that the responder rejected the request.
type Direction byte

const (
	// ToDevice marks a frame addressed to the responding device.
	ToDevice Direction = '<'

	// ToHost marks a frame addressed to the requesting host.
	ToHost Direction = '>'

	// Nack marks a structurally valid frame whose request was rejected by
	// the device.
	Nack Direction = '!'
)

// IsNack reports whether the frame signals device-side rejection.
func (d Direction) IsNack() bool {
	return d == Nack
}

func (d Direction) String() string {
	switch d {
	case ToDevice:
		return "to-device"
	case ToHost:
		return "to-host"
	case Nack:
		return "nack"
	default:
		return fmt.Sprintf("Direction(0x%02X)", byte(d))
	}
}

// Packet is the wire-level view of one MSP frame, either decoded from the
// stream or about to be serialized onto it.
//
// Flag is only meaningful for V2 frames; V1 frames carry an implicit flag
// of 0. Checksum is the single trailing checksum byte as received or
// computed and is not part of the logical payload.
type Packet struct {
	Version   Version
	Direction Direction
	Flag      byte
	Function  uint16
	Payload   []byte
	Checksum  byte
}

func (p *Packet) String() string {
	return fmt.Sprintf("%s %s function=%d flag=%d payload=%dB checksum=0x%02X",
		p.Version, p.Direction, p.Function, p.Flag, len(p.Payload), p.Checksum)
}
