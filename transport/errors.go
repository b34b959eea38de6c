package transport

import "fmt"

// SyscallError wraps an operating-system level failure from the underlying
// serial port. The engine never retries these; they surface to the caller
// with the original cause reachable through errors.Unwrap.
type SyscallError struct {
	// Op names the failing operation: "open", "configure", "read",
	// "write", "drain", "flush", or "close".
	Op  string
	Err error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("serial %s: %v", e.Op, e.Err)
}

func (e *SyscallError) Unwrap() error {
	return e.Err
}

// TxIncompleteError indicates the port accepted fewer bytes than requested.
// Partial writes are not re-issued: a partial MSP frame cannot be resumed,
// so the operation fails and the next request's drain/flush recovers.
type TxIncompleteError struct {
	Wrote int
	Want  int
}

func (e *TxIncompleteError) Error() string {
	return fmt.Sprintf("short write: %d of %d bytes accepted", e.Wrote, e.Want)
}

// RxIncompleteError indicates the read retry budget ran out before the
// requested number of bytes arrived.
type RxIncompleteError struct {
	Read int
	Want int
}

func (e *RxIncompleteError) Error() string {
	return fmt.Sprintf("short read: %d of %d bytes received before retries ran out", e.Read, e.Want)
}
