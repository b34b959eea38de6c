// Package device manages one MSP session end to end: opening and closing
// the serial link, and driving request/response cycles against the
// connected flight controller or similar MSP responder.
//
// # Basic Usage
//
//	dev := device.New(device.WithVersion(2))
//	if err := dev.Open("/dev/ttyACM0"); err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	pkt, err := dev.Get(protocol.FuncAPIVersion)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("api version payload: %x\n", pkt.Payload)
//
// # Request Cycle
//
// Every Set and Get runs the same discipline: flush stale input, serialize
// and send the request, then (unless suppressed with WithoutAck) await one
// decoded response. Stale bytes from an earlier aborted exchange are
// dropped by the flush, and a drain before parsing guarantees the request
// finished transmitting, so the engine recovers from a desynchronized
// stream at the next request rather than trying to resynchronize in place.
//
// # Errors
//
// A device that rejected the request surfaces as *protocol.NackError and a
// corrupted response as *protocol.ChecksumMismatchError, both carrying the
// decoded frame. Transport-level failures keep their precise kind:
// transport.SyscallError, transport.TxIncompleteError, and
// transport.RxIncompleteError.
//
// # Concurrency
//
// All public operations on one Device serialize on an internal mutex held
// for the full span of the operation, including its I/O. Use one Device
// per physical link; distinct Devices never contend.
package device
