package dispatch

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodePayload_Plain(t *testing.T) {
	data := []byte(`{"alerts":[]}`)

	payload := EncodePayload(data, false)

	if len(payload) != len(data)+1 {
		t.Fatalf("Expected %d bytes, got %d", len(data)+1, len(payload))
	}
	if Encoding(payload[0]) != EncodingNone {
		t.Errorf("Expected encoding byte %d, got %d", EncodingNone, payload[0])
	}
	if !bytes.Equal(payload[1:], data) {
		t.Error("Body should match input data")
	}
}

func TestEncodePayload_Snappy(t *testing.T) {
	// Repetitive JSON compresses well
	data := []byte(strings.Repeat(`{"sku":"SKU-1","available":0}`, 50))

	payload := EncodePayload(data, true)

	if Encoding(payload[0]) != EncodingSnappy {
		t.Fatalf("Expected encoding byte %d, got %d", EncodingSnappy, payload[0])
	}
	if len(payload) >= len(data) {
		t.Errorf("Compressed payload (%d bytes) should be smaller than input (%d bytes)", len(payload), len(data))
	}

	decoded, err := DecodePayload(payload)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Decoded body should match input data")
	}
}

func TestEncodePayload_IncompressibleFallsBack(t *testing.T) {
	// Too short for Snappy to shrink
	data := []byte("x")

	payload := EncodePayload(data, true)

	if Encoding(payload[0]) != EncodingNone {
		t.Errorf("Expected plain framing for incompressible data, got encoding %d", payload[0])
	}

	decoded, err := DecodePayload(payload)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Decoded body should match input data")
	}
}

func TestDecodePayload_Roundtrip(t *testing.T) {
	data := []byte(`{"summary":{"total":3}}`)

	for _, compress := range []bool{false, true} {
		decoded, err := DecodePayload(EncodePayload(data, compress))
		if err != nil {
			t.Fatalf("compress=%v: failed to decode: %v", compress, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("compress=%v: decoded body should match input", compress)
		}
	}
}

func TestDecodePayload_Empty(t *testing.T) {
	_, err := DecodePayload(nil)
	if err == nil {
		t.Fatal("Expected error for empty payload")
	}
}

func TestDecodePayload_UnknownEncoding(t *testing.T) {
	_, err := DecodePayload([]byte{0xFF, 'a', 'b'})
	if err == nil {
		t.Fatal("Expected error for unknown encoding byte")
	}
}

func TestDecodePayload_CorruptSnappy(t *testing.T) {
	payload := []byte{byte(EncodingSnappy), 0xDE, 0xAD, 0xBE, 0xEF}

	_, err := DecodePayload(payload)
	if err == nil {
		t.Fatal("Expected error for corrupt snappy body")
	}
}
