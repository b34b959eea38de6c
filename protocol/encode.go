package protocol

import "encoding/binary"

// WriteV1 serializes a v1 request frame onto the link. Payloads larger
// than MaxV1Payload are sent as jumbo frames: the length field carries the
// jumbo marker and the true 16-bit length follows it on the wire.
//
// The frame is staged as separate writes (header, payload, checksum); a
// failure at any stage aborts with that stage's error and may leave a
// partial frame on the wire, which the next request's drain and input
// flush account for.
func WriteV1(link Link, function uint8, payload []byte) error {
	if len(payload) > MaxDeclaredPayload {
		return &PayloadTooLargeError{Size: len(payload)}
	}

	lengthByte := byte(len(payload))
	if len(payload) > MaxV1Payload {
		lengthByte = JumboMarker
	}

	head := [5]byte{SyncByte, byte(V1), byte(ToHost), lengthByte, function}
	if err := link.WriteFull(head[:]); err != nil {
		return err
	}

	// The checksum spans the length field(s), function id, and payload.
	// The sync, version, and direction bytes are excluded.
	checksum := lengthByte ^ function

	if len(payload) > MaxV1Payload {
		var ext [2]byte
		binary.LittleEndian.PutUint16(ext[:], uint16(len(payload)))
		if err := link.WriteFull(ext[:]); err != nil {
			return err
		}
		checksum = ChecksumXOR(ext[:], checksum)
	}

	if err := link.WriteFull(payload); err != nil {
		return err
	}
	checksum = ChecksumXOR(payload, checksum)

	return link.WriteFull([]byte{checksum})
}

// WriteV2 serializes a v2 request frame onto the link: an 8-byte header
// (sync, version, direction, flag, function LE16, length LE16), the
// payload, and a CRC-8/DVB-S2 checksum over the flag, function, length,
// and payload bytes.
//
// Write staging and failure behavior match WriteV1.
func WriteV2(link Link, flag byte, function uint16, payload []byte) error {
	if len(payload) > MaxDeclaredPayload {
		return &PayloadTooLargeError{Size: len(payload)}
	}

	head := [8]byte{SyncByte, byte(V2), byte(ToHost), flag}
	binary.LittleEndian.PutUint16(head[4:6], function)
	binary.LittleEndian.PutUint16(head[6:8], uint16(len(payload)))

	if err := link.WriteFull(head[:]); err != nil {
		return err
	}

	if err := link.WriteFull(payload); err != nil {
		return err
	}

	checksum := ChecksumCRC8DVBS2(head[3:], 0)
	checksum = ChecksumCRC8DVBS2(payload, checksum)

	return link.WriteFull([]byte{checksum})
}
