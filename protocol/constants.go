package protocol

// Frame structure constants.
const (
	// SyncByte is the marker that begins every MSP frame. The parser scans
	// for it to regain alignment on the byte stream.
	SyncByte = '$'

	// JumboMarker in a v1 length field signals a jumbo frame: the true
	// 16-bit payload length follows as two little-endian bytes.
	JumboMarker = 0xFF

	// EncapsulationMarker in a v1 function field signals that the remainder
	// of the frame is a complete v2 frame carried in the v1 envelope.
	EncapsulationMarker = 0xFF

	// MaxV1Payload is the largest payload a v1 frame can declare without
	// the jumbo extension.
	MaxV1Payload = 254

	// MaxV1Function is the largest function id a plain v1 frame can carry
	// (0xFF is reserved as the encapsulation marker).
	MaxV1Function = 0xFF

	// MaxDeclaredPayload is the largest payload length the 16-bit wire
	// length field can express. One value is lost to the v1 jumbo marker.
	MaxDeclaredPayload = 0xFFFF

	// V2HeaderSize is the fixed v2 sub-header: flag, function (LE16),
	// payload length (LE16).
	V2HeaderSize = 5

	// MaxSyncSearchBytes bounds how many bytes the parser inspects while
	// hunting for SyncByte before giving up.
	MaxSyncSearchBytes = 50

	// ReadBufferSize is the default receive scratch buffer capacity. The
	// largest acceptable declared payload is one byte less, the last byte
	// being the frame checksum.
	ReadBufferSize = 1024
)

// Well-known MSP function ids. This is not an exhaustive registry, just the
// identification and status queries most hosts issue first.
const (
	FuncAPIVersion = 1
	FuncFCVariant  = 2
	FuncFCVersion  = 3
	FuncBoardInfo  = 4
	FuncBuildInfo  = 5
	FuncName       = 10
	FuncIdent      = 100
	FuncStatus     = 101
	FuncRawIMU     = 102
	FuncAttitude   = 108
	FuncAltitude   = 109
	FuncAnalog     = 110
)
