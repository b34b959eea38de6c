package device

import (
	"errors"
	"fmt"

	"github.com/msptools/go-msplink/protocol"
)

// ErrAlreadyOpen indicates Open was called on a device whose link is
// already open. The existing link is left untouched.
var ErrAlreadyOpen = errors.New("msp link is already open")

// ErrNotOpen indicates a request was issued before Open succeeded.
var ErrNotOpen = errors.New("msp link is not open")

// FunctionRangeError indicates a function id that does not fit the
// selected protocol version: v1 carries only 8-bit function ids.
type FunctionRangeError struct {
	Function uint16
}

func (e *FunctionRangeError) Error() string {
	return fmt.Sprintf("function %d does not fit in MSPv1 (max %d)", e.Function, protocol.MaxV1Function)
}
