package protocol

import (
	"encoding/binary"
	"errors"

	"github.com/msptools/go-msplink/transport"
)

// Link is the reliable byte-stream surface the framing layer runs on.
// transport.Serial implements it; tests substitute in-memory loopbacks.
type Link interface {
	// ReadFull fills p completely or fails. A zero-length read succeeds
	// without touching the underlying stream.
	ReadFull(p []byte) error

	// WriteFull writes all of p or fails. Short writes are not resumed.
	WriteFull(p []byte) error

	// Drain blocks until previously written bytes have been transmitted.
	Drain() error
}

var _ Link = (*transport.Serial)(nil)

// ReadPacket synchronizes on the stream and decodes the next frame,
// verifying its checksum. buf is the caller-owned receive scratch buffer;
// its length minus one checksum byte bounds the largest acceptable declared
// payload. The returned packet owns a copy of the payload, so buf may be
// reused for the next call.
//
// Failure modes:
//   - drain or read failures from the link propagate as-is, except that a
//     short read while hunting for the sync byte becomes ErrSyncNotFound
//   - ErrSyncNotFound when no sync byte appears within MaxSyncSearchBytes
//   - ErrInternal when the version tag is neither 'M' nor 'X'
//   - *OversizePayloadError before any payload byte is read, when the
//     declared length does not fit buf; the stream is left desynchronized
//   - *ChecksumMismatchError carrying the decoded frame
//   - *NackError carrying the decoded frame, when the frame is valid but
//     its direction byte marks device-side rejection
func ReadPacket(link Link, buf []byte) (*Packet, error) {
	if err := link.Drain(); err != nil {
		return nil, err
	}

	if err := seekSync(link); err != nil {
		return nil, err
	}

	var head [2]byte
	if err := link.ReadFull(head[:]); err != nil {
		return nil, err
	}

	pkt := &Packet{
		Version:   Version(head[0]),
		Direction: Direction(head[1]),
	}

	var err error
	switch pkt.Version {
	case V1:
		err = readV1(link, buf, pkt)
	case V2:
		err = readV2(link, buf, pkt)
	default:
		// The version tag is only read after a sync byte; anything else
		// here means the stream lied or the engine lost its place.
		return nil, ErrInternal
	}
	if err != nil {
		return nil, err
	}

	if pkt.Direction.IsNack() {
		return nil, &NackError{Packet: pkt}
	}

	return pkt, nil
}

// seekSync consumes bytes one at a time until it sees SyncByte, giving up
// after MaxSyncSearchBytes. The input was flushed before the request went
// out, so there should be little to weed through.
func seekSync(link Link) error {
	var b [1]byte
	for i := 0; i < MaxSyncSearchBytes; i++ {
		if err := link.ReadFull(b[:]); err != nil {
			// Retries exhausted with nothing arriving: stop early.
			// "No sync found" is more informative to the caller than
			// the short-read error.
			var incomplete *transport.RxIncompleteError
			if errors.As(err, &incomplete) {
				return ErrSyncNotFound
			}
			return err
		}
		if b[0] == SyncByte {
			return nil
		}
	}
	return ErrSyncNotFound
}

// readV1 decodes a v1 frame body: sync, version, and direction bytes are
// already consumed. Handles the jumbo length extension and v2-in-v1
// encapsulation.
func readV1(link Link, buf []byte, pkt *Packet) error {
	var head [2]byte
	if err := link.ReadFull(head[:]); err != nil {
		return err
	}

	checksum := ChecksumXOR(head[:], 0)
	length := int(head[0])
	pkt.Function = uint16(head[1])

	if head[0] == JumboMarker {
		// Jumbo frame: the true 16-bit length follows. The two length
		// bytes fold into the checksum but do not count toward the
		// declared payload length.
		var ext [2]byte
		if err := link.ReadFull(ext[:]); err != nil {
			return err
		}
		checksum = ChecksumXOR(ext[:], checksum)
		length = int(binary.LittleEndian.Uint16(ext[:]))
	}

	if head[1] == EncapsulationMarker {
		// The remainder is a complete v2 frame in the v1 envelope. It
		// carries its own, stronger checksum, so the v1 checksum is
		// abandoned unverified.
		return readV2(link, buf, pkt)
	}

	return readBody(link, buf, pkt, length, checksum, ChecksumXOR)
}

// readV2 decodes a v2 frame body, either standalone or encapsulated in a
// v1 envelope. At entry the next unread byte is the v2 flag byte.
func readV2(link Link, buf []byte, pkt *Packet) error {
	var head [V2HeaderSize]byte
	if err := link.ReadFull(head[:]); err != nil {
		return err
	}

	crc := ChecksumCRC8DVBS2(head[:], 0)
	pkt.Flag = head[0]
	pkt.Function = binary.LittleEndian.Uint16(head[1:3])
	length := int(binary.LittleEndian.Uint16(head[3:5]))

	return readBody(link, buf, pkt, length, crc, ChecksumCRC8DVBS2)
}

// readBody reads the declared payload plus the trailing checksum byte into
// buf, extends the seeded checksum over the payload, and verifies it.
func readBody(link Link, buf []byte, pkt *Packet, length int, seed byte, fold func([]byte, byte) byte) error {
	if length > len(buf)-1 {
		return &OversizePayloadError{Declared: length, Capacity: len(buf) - 1}
	}

	frame := buf[:length+1]
	if err := link.ReadFull(frame); err != nil {
		return err
	}

	pkt.Payload = append([]byte(nil), frame[:length]...)
	pkt.Checksum = frame[length]

	if computed := fold(frame[:length], seed); computed != pkt.Checksum {
		return &ChecksumMismatchError{Packet: pkt, Want: computed, Got: pkt.Checksum}
	}
	return nil
}
