package protocol

import (
	"errors"
	"fmt"
)

// ErrSyncNotFound indicates no sync byte turned up within the search bound.
// The byte stream should be presumed desynchronized; the next request's
// input flush recovers alignment.
var ErrSyncNotFound = errors.New("sync byte not found")

// ErrInternal indicates a defensive condition that is unreachable in
// correct operation. Seeing it means a bug in this library, not a protocol
// failure.
var ErrInternal = errors.New("internal protocol engine error")

// OversizePayloadError indicates a frame declared a payload larger than the
// receive buffer can hold. The frame is rejected before any payload bytes
// are read, leaving the stream desynchronized.
type OversizePayloadError struct {
	// Declared is the payload length announced in the frame header.
	Declared int

	// Capacity is the usable receive buffer capacity (buffer size minus
	// the trailing checksum byte).
	Capacity int
}

func (e *OversizePayloadError) Error() string {
	return fmt.Sprintf("declared payload of %d bytes exceeds receive capacity of %d", e.Declared, e.Capacity)
}

// PayloadTooLargeError indicates an outgoing payload that cannot be
// expressed in the 16-bit wire length field.
type PayloadTooLargeError struct {
	Size int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds the %d byte wire limit", e.Size, MaxDeclaredPayload)
}

// ChecksumMismatchError indicates a frame that decoded structurally but
// whose trailing checksum byte disagrees with the computed value. Packet
// holds the frame as it appeared on the wire, for diagnostics.
type ChecksumMismatchError struct {
	Packet *Packet
	Want   byte
	Got    byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch on function %d: computed 0x%02X, received 0x%02X",
		e.Packet.Function, e.Want, e.Got)
}

// NackError indicates a checksum-valid response whose direction byte marks
// the request as rejected by the device. Packet holds the full decoded
// response, which may carry diagnostic payload.
type NackError struct {
	Packet *Packet
}

func (e *NackError) Error() string {
	return fmt.Sprintf("device rejected function %d", e.Packet.Function)
}
