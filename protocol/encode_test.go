package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteV1WireFormat(t *testing.T) {
	tests := []struct {
		name     string
		function uint8
		payload  []byte
		expected []byte
	}{
		{
			name:     "empty payload",
			function: 100,
			payload:  nil,
			expected: []byte{'$', 'M', '>', 0, 100, 100},
		},
		{
			name:     "small payload",
			function: 108,
			payload:  []byte{1, 2},
			expected: []byte{'$', 'M', '>', 2, 108, 1, 2, 0x6D},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := &loopback{}
			if err := WriteV1(link, tt.function, tt.payload); err != nil {
				t.Fatalf("WriteV1() error: %v", err)
			}
			if !bytes.Equal(link.data, tt.expected) {
				t.Errorf("wire = % X, want % X", link.data, tt.expected)
			}
		})
	}
}

func TestWriteV1JumboBoundary(t *testing.T) {
	t.Run("254 bytes stays plain", func(t *testing.T) {
		link := &loopback{}
		if err := WriteV1(link, 7, make([]byte, MaxV1Payload)); err != nil {
			t.Fatalf("WriteV1() error: %v", err)
		}
		if link.data[3] != MaxV1Payload {
			t.Errorf("length byte = %d, want %d", link.data[3], MaxV1Payload)
		}
		if got, want := len(link.data), 5+MaxV1Payload+1; got != want {
			t.Errorf("frame length = %d, want %d", got, want)
		}
	})

	t.Run("300 bytes goes jumbo", func(t *testing.T) {
		payload := bytes.Repeat([]byte{0x42}, 300)
		link := &loopback{}
		if err := WriteV1(link, 7, payload); err != nil {
			t.Fatalf("WriteV1() error: %v", err)
		}
		if link.data[3] != JumboMarker {
			t.Errorf("length byte = 0x%02X, want the jumbo marker", link.data[3])
		}
		// True length 300 = 0x012C, little-endian, after the function byte.
		if link.data[5] != 0x2C || link.data[6] != 0x01 {
			t.Errorf("jumbo extension = % X, want 2C 01", link.data[5:7])
		}
		if got := link.data[len(link.data)-1]; got != 0xD5 {
			t.Errorf("checksum = 0x%02X, want 0xD5", got)
		}
	})
}

func TestWriteV2WireFormat(t *testing.T) {
	link := &loopback{}
	if err := WriteV2(link, 0xA5, 0x1234, []byte{0xDE, 0xAD}); err != nil {
		t.Fatalf("WriteV2() error: %v", err)
	}

	expected := []byte{'$', 'X', '>', 0xA5, 0x34, 0x12, 0x02, 0x00, 0xDE, 0xAD, 0x19}
	if !bytes.Equal(link.data, expected) {
		t.Errorf("wire = % X, want % X", link.data, expected)
	}
}

func TestWritePayloadTooLarge(t *testing.T) {
	payload := make([]byte, MaxDeclaredPayload+1)

	var tooLarge *PayloadTooLargeError
	if err := WriteV1(&loopback{}, 1, payload); !errors.As(err, &tooLarge) {
		t.Errorf("WriteV1() error = %v, want PayloadTooLargeError", err)
	}
	if err := WriteV2(&loopback{}, 0, 1, payload); !errors.As(err, &tooLarge) {
		t.Errorf("WriteV2() error = %v, want PayloadTooLargeError", err)
	}
}

func TestWriteFailureAborts(t *testing.T) {
	wantErr := errors.New("port unplugged")
	link := &loopback{writeErr: wantErr}

	if err := WriteV1(link, 1, []byte{1}); !errors.Is(err, wantErr) {
		t.Errorf("WriteV1() error = %v, want the write error", err)
	}
	if len(link.data) != 0 {
		t.Errorf("%d bytes written after failure, want 0", len(link.data))
	}
	if err := WriteV2(link, 0, 1, []byte{1}); !errors.Is(err, wantErr) {
		t.Errorf("WriteV2() error = %v, want the write error", err)
	}
}
