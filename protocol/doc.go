// Package protocol implements the MSP (Multi-Wii Serial Protocol) wire
// format: both packet versions, their checksums, and the framing logic
// that keeps a noisy serial byte stream decodable.
//
// # Wire Format
//
// Every frame begins with the sync byte '$', a version tag ('M' for v1,
// 'X' for v2), and a direction byte ('<' to the device, '>' to the host,
// '!' for a rejected request). The two versions then diverge:
//
//	v1: [length][function][payload...][xor checksum]
//	v2: [flag][function lo][function hi][length lo][length hi][payload...][crc8]
//
// A v1 length byte of 0xFF marks a jumbo frame, with the true 16-bit
// length following as two little-endian bytes. A v1 function byte of 0xFF
// marks a v2 frame encapsulated in the v1 envelope; the inner frame
// carries its own CRC and the v1 checksum is never checked on that path.
//
// # Framing
//
// ReadPacket recovers synchronization by scanning for the sync byte
// (bounded at MaxSyncSearchBytes), dispatches on the version tag, bounds
// the declared payload length against the caller's receive buffer before
// reading any payload bytes, and verifies the checksum. Checksum failures
// and device rejections (NACK) are reported as errors that carry the
// decoded frame for diagnostics.
//
// WriteV1 and WriteV2 serialize request frames with correct checksums,
// choosing the jumbo extension automatically when a v1 payload exceeds 254
// bytes.
//
// # Checksums
//
// Both checksums are streaming accumulators: seed them with 0 (or a prior
// return value) and fold byte ranges in any chunking. v1 uses a plain XOR;
// v2 uses table-driven CRC-8 with the DVB-S2 polynomial.
//
// This package performs no I/O of its own: it runs over the Link interface,
// implemented by transport.Serial or any in-memory substitute.
package protocol
