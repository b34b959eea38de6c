package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePort scripts the underlying port: each element of reads is what one
// Read call delivers (possibly empty, modelling a timeout). Call counts
// let tests assert on syscall behavior.
type fakePort struct {
	reads     [][]byte
	readCalls int
	readErrAt int // 1-based call number that fails, 0 for never
	readErr   error

	written    []byte
	writeN     int // bytes accepted per write, -1 for all
	writeErr   error
	writeCalls int

	drainCalls int
	drainErr   error
	flushCalls int
	flushErr   error
	closeCalls int
	closeErr   error
}

func newFakePort() *fakePort {
	return &fakePort{writeN: -1}
}

func (f *fakePort) Read(p []byte) (int, error) {
	f.readCalls++
	if f.readErrAt > 0 && f.readCalls >= f.readErrAt {
		return 0, f.readErr
	}
	if len(f.reads) == 0 {
		return 0, nil // timeout, nothing arrived
	}
	chunk := f.reads[0]
	f.reads = f.reads[1:]
	n := copy(p, chunk)
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.writeCalls++
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	n := len(p)
	if f.writeN >= 0 && f.writeN < n {
		n = f.writeN
	}
	f.written = append(f.written, p[:n]...)
	return n, nil
}

func (f *fakePort) Drain() error {
	f.drainCalls++
	return f.drainErr
}

func (f *fakePort) ResetInputBuffer() error {
	f.flushCalls++
	return f.flushErr
}

func (f *fakePort) Close() error {
	f.closeCalls++
	return f.closeErr
}

func TestReadFullAccumulatesAcrossReads(t *testing.T) {
	port := newFakePort()
	port.reads = [][]byte{{1, 2}, {}, {3, 4, 5}}
	s := NewFromPort(port, WithReadRetries(3))

	buf := make([]byte, 5)
	require.NoError(t, s.ReadFull(buf))
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, buf)
	assert.Equal(t, 3, port.readCalls)
}

func TestReadFullRetryBudgetExhausted(t *testing.T) {
	port := newFakePort()
	port.reads = [][]byte{{1}} // one byte, then timeouts
	s := NewFromPort(port, WithReadRetries(3))

	err := s.ReadFull(make([]byte, 4))

	var incomplete *RxIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.Read)
	assert.Equal(t, 4, incomplete.Want)
	assert.Equal(t, 3, port.readCalls, "budget bounds the number of reads")
}

func TestReadFullZeroLengthIssuesNoSyscall(t *testing.T) {
	port := newFakePort()
	s := NewFromPort(port)

	require.NoError(t, s.ReadFull(nil))
	require.NoError(t, s.ReadFull([]byte{}))
	assert.Zero(t, port.readCalls)
}

func TestReadFullOSErrorFailsImmediately(t *testing.T) {
	cause := errors.New("input/output error")
	port := newFakePort()
	port.readErrAt = 2
	port.readErr = cause
	port.reads = [][]byte{{1}}
	s := NewFromPort(port, WithReadRetries(5))

	err := s.ReadFull(make([]byte, 3))

	var sysErr *SyscallError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "read", sysErr.Op)
	assert.ErrorIs(t, err, cause, "the OS error must stay reachable")
	assert.Equal(t, 2, port.readCalls, "no further retries after an OS error")
}

func TestWriteFull(t *testing.T) {
	t.Run("complete write", func(t *testing.T) {
		port := newFakePort()
		s := NewFromPort(port)

		require.NoError(t, s.WriteFull([]byte{1, 2, 3}))
		assert.Equal(t, []byte{1, 2, 3}, port.written)
	})

	t.Run("short write is not retried", func(t *testing.T) {
		port := newFakePort()
		port.writeN = 2
		s := NewFromPort(port)

		err := s.WriteFull([]byte{1, 2, 3})

		var tx *TxIncompleteError
		require.ErrorAs(t, err, &tx)
		assert.Equal(t, 2, tx.Wrote)
		assert.Equal(t, 3, tx.Want)
		assert.Equal(t, 1, port.writeCalls)
	})

	t.Run("OS error", func(t *testing.T) {
		cause := errors.New("broken pipe")
		port := newFakePort()
		port.writeErr = cause
		s := NewFromPort(port)

		err := s.WriteFull([]byte{1})

		var sysErr *SyscallError
		require.ErrorAs(t, err, &sysErr)
		assert.Equal(t, "write", sysErr.Op)
		assert.ErrorIs(t, err, cause)
	})
}

func TestDrainAndFlush(t *testing.T) {
	port := newFakePort()
	s := NewFromPort(port)

	require.NoError(t, s.Drain())
	require.NoError(t, s.FlushInput())
	assert.Equal(t, 1, port.drainCalls)
	assert.Equal(t, 1, port.flushCalls)

	cause := errors.New("ioctl failed")
	port.drainErr = cause
	port.flushErr = cause

	var sysErr *SyscallError
	require.ErrorAs(t, s.Drain(), &sysErr)
	assert.Equal(t, "drain", sysErr.Op)
	require.ErrorAs(t, s.FlushInput(), &sysErr)
	assert.Equal(t, "flush", sysErr.Op)
}

func TestClose(t *testing.T) {
	port := newFakePort()
	s := NewFromPort(port)
	require.NoError(t, s.Close())
	assert.Equal(t, 1, port.closeCalls)

	port.closeErr = errors.New("close failed")
	s = NewFromPort(port)

	var sysErr *SyscallError
	require.ErrorAs(t, s.Close(), &sysErr)
	assert.Equal(t, "close", sysErr.Op)
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	cfg := defaultConfig()
	for _, opt := range []Option{WithBaudRate(0), WithReadRetries(-1), WithReadTimeout(0)} {
		opt(&cfg)
	}

	assert.Equal(t, DefaultBaudRate, cfg.BaudRate)
	assert.Equal(t, DefaultReadRetries, cfg.ReadRetries)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
}

func TestNewFromPortNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewFromPort(nil) })
}
