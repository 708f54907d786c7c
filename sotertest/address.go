package sotertest

import (
	"crypto/rand"
	"testing"

	"github.com/soter-one/soter"
)

// NewAddress returns a random, valid identity. Each call returns a
// different value.
func NewAddress() soter.Address {
	addr := make(soter.Address, soter.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		panic(err)
	}
	return addr
}

// SequentialAddress returns a valid identity fully determined by the
// given byte. Use it when a test needs stable, readable addresses.
func SequentialAddress(b byte) soter.Address {
	addr := make(soter.Address, soter.AddressLength)
	for i := range addr {
		addr[i] = b
	}
	return addr
}

// ParseAddress takes an address in a human readable format and
// returns its binary representation. This function is a test helper
// that is using soter.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) soter.Address {
	t.Helper()

	addr, err := soter.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
