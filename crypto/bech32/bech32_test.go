package bech32

import (
	"bytes"
	"testing"
)

func TestBech32RoundTrip(t *testing.T) {
	payload := []byte("test-payload")

	enc, err := Encode("soter", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}

	hrp, got, err := Decode(string(enc))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "soter" {
		t.Fatalf("invalid human readable part: %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %d", payload)
		t.Logf("got  %d", got)
		t.Fatal("invalid decode")
	}
}

func TestBech32DecodeGarbage(t *testing.T) {
	if _, _, err := Decode("soter1notbech32!!!"); err == nil {
		t.Fatal("decode must fail")
	}
}
