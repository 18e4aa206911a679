package dispatch

import (
	"fmt"

	"github.com/golang/snappy"
)

// Encoding identifies how a dispatched payload is framed on the wire
type Encoding uint8

const (
	// EncodingNone is a plain JSON payload
	EncodingNone Encoding = 0

	// EncodingSnappy is a Snappy-compressed JSON payload
	EncodingSnappy Encoding = 1
)

// EncodePayload frames data for transport. The first byte carries the
// encoding so consumers can decode without out-of-band agreement. When
// compress is set the payload is Snappy-encoded, unless compression
// would not shrink it.
func EncodePayload(data []byte, compress bool) []byte {
	if compress {
		compressed := snappy.Encode(nil, data)
		if len(compressed) < len(data) {
			return append([]byte{byte(EncodingSnappy)}, compressed...)
		}
	}
	return append([]byte{byte(EncodingNone)}, data...)
}

// DecodePayload unwraps a framed payload back into the raw message body
func DecodePayload(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	switch Encoding(payload[0]) {
	case EncodingNone:
		return payload[1:], nil

	case EncodingSnappy:
		decoded, err := snappy.Decode(nil, payload[1:])
		if err != nil {
			return nil, fmt.Errorf("snappy decode failed: %w", err)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("unsupported payload encoding: %d", payload[0])
	}
}
