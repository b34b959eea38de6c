// Package transport provides the reliable serial primitives the MSP
// framing layer depends on: bounded-retry exact reads, all-or-nothing
// writes, transmit drain, and input flush, over one open port.
//
// Open configures the line the way MSP devices expect: raw mode, 8 data
// bits, no parity, one stop bit, no flow control, 115200 baud by default,
// and a 100ms per-read timeout so a read may legitimately return zero
// bytes instead of blocking forever. ReadFull turns that into an exact
// read with a bounded retry budget; WriteFull refuses to paper over short
// writes, because a partial MSP frame cannot be meaningfully resumed.
//
// The package is written against the narrow Port interface rather than a
// concrete serial port, so custom hardware adapters and in-memory test
// doubles plug in through NewFromPort.
//
// Failure kinds are distinguished precisely: SyscallError (OS-level
// failure, cause wrapped), TxIncompleteError (short write), and
// RxIncompleteError (retry budget exhausted). None are retried internally
// beyond ReadFull's own timeout retries.
package transport
