/*
Package sigcodec packs and unpacks the composite signature wire
format:

  rawLen   | rawSignature | validator      | hookCount | hookLen | hookData | ...
  2 bytes  | variable     | AddressLength  | 1 byte    | 2 bytes | variable

All integers are big-endian. One hook data slot is carried per
installed validation hook.

A blob whose total length equals EstimationStubLength is not a real
signature at all: it is a placeholder used by off-chain fee estimators
and is dispatched on length alone, never on content.
*/
package sigcodec

import (
	"encoding/binary"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

const (
	// EstimationStubLength is the reserved total blob length that
	// signals the fee estimation placeholder. It is strictly below
	// the minimum length of any well-formed encoding, so no real
	// signature can collide with it.
	EstimationStubLength = 20

	rawLenSize    = 2
	hookCountSize = 1
	hookLenSize   = 2

	// maxRawLen and maxHookDataLen are what the 2-byte length
	// prefixes can carry; maxHookCount what the 1-byte count can.
	maxRawLen      = 1<<16 - 1
	maxHookDataLen = 1<<16 - 1
	maxHookCount   = 1<<8 - 1
)

// minEncodedLength is the shortest well-formed encoding: empty raw
// signature, the validator identity and a zero hook count.
func minEncodedLength() int {
	return rawLenSize + soter.AddressLength + hookCountSize
}

// Signature is the decoded form of a composite signature blob.
type Signature struct {
	// Raw is the signature bytes handed to the validator.
	Raw []byte

	// Validator selects the registry entry that must verify Raw.
	Validator soter.Address

	// HookData carries one opaque slot per installed validation
	// hook, in hook installation order.
	HookData [][]byte

	// Estimation is set when the blob was the estimation stub. No
	// other field is populated then.
	Estimation bool
}

// EstimationStub returns the canonical fee estimation placeholder.
func EstimationStub() []byte {
	return make([]byte, EstimationStubLength)
}

// Decode unpacks a composite signature blob. It fails with
// ErrMalformedSig if the blob is shorter than the minimum header or
// any declared sub-length overflows the buffer.
func Decode(blob []byte) (*Signature, error) {
	if len(blob) == EstimationStubLength {
		return &Signature{Estimation: true}, nil
	}
	if len(blob) < minEncodedLength() {
		return nil, errors.ErrMalformedSig.Newf("%d bytes, below minimum header", len(blob))
	}

	rawLen := int(binary.BigEndian.Uint16(blob))
	off := rawLenSize
	if off+rawLen+soter.AddressLength+hookCountSize > len(blob) {
		return nil, errors.ErrMalformedSig.Newf("raw signature length %d overflows blob", rawLen)
	}
	raw := blob[off : off+rawLen]
	off += rawLen

	validator := soter.Address(blob[off : off+soter.AddressLength])
	off += soter.AddressLength

	count := int(blob[off])
	off += hookCountSize

	hookData := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		if off+hookLenSize > len(blob) {
			return nil, errors.ErrMalformedSig.Newf("hook slot %d: missing length", i)
		}
		n := int(binary.BigEndian.Uint16(blob[off:]))
		off += hookLenSize
		if off+n > len(blob) {
			return nil, errors.ErrMalformedSig.Newf("hook slot %d: length %d overflows blob", i, n)
		}
		hookData = append(hookData, blob[off:off+n])
		off += n
	}

	if off != len(blob) {
		return nil, errors.ErrMalformedSig.Newf("%d trailing bytes", len(blob)-off)
	}

	return &Signature{
		Raw:       raw,
		Validator: validator,
		HookData:  hookData,
	}, nil
}

// Encode is the exact inverse of Decode. Round trips are lossless for
// all well-formed inputs.
func Encode(raw []byte, validator soter.Address, hookData [][]byte) ([]byte, error) {
	if err := validator.Validate(); err != nil {
		return nil, errors.Wrap(err, "validator")
	}
	if len(raw) > maxRawLen {
		return nil, errors.ErrInput.Newf("raw signature: %d bytes", len(raw))
	}
	if len(hookData) > maxHookCount {
		return nil, errors.ErrInput.Newf("%d hook slots", len(hookData))
	}

	size := minEncodedLength() + len(raw)
	for _, d := range hookData {
		if len(d) > maxHookDataLen {
			return nil, errors.ErrInput.Newf("hook data: %d bytes", len(d))
		}
		size += hookLenSize + len(d)
	}

	out := make([]byte, 0, size)
	var scratch [2]byte
	binary.BigEndian.PutUint16(scratch[:], uint16(len(raw)))
	out = append(out, scratch[:]...)
	out = append(out, raw...)
	out = append(out, validator...)
	out = append(out, byte(len(hookData)))
	for _, d := range hookData {
		binary.BigEndian.PutUint16(scratch[:], uint16(len(d)))
		out = append(out, scratch[:]...)
		out = append(out, d...)
	}
	return out, nil
}
