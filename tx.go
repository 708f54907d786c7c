package soter

import "github.com/soter-one/soter/errors"

// DigestLength is the size of the signed hash carried by every
// transaction.
const DigestLength = 32

// Tx is the immutable per-attempt snapshot of an inbound transaction.
// The authorizer reads it, never writes it. The outer envelope (fee
// data, batching, transport framing) is not modelled here.
type Tx struct {
	// SignedHash is the digest the signature was produced over.
	SignedHash []byte

	// Sender is the apparent origin of the call.
	Sender Address

	// Target is the destination of the inner call.
	Target Address

	// Value is the amount transferred with the inner call.
	Value int64

	// Payload is the calldata of the inner call.
	Payload []byte

	// Nonce is the declared replay protection counter value. It
	// must equal the account's expected value.
	Nonce uint64
}

// Validate returns an error if the transaction snapshot cannot be
// processed at all.
func (tx *Tx) Validate() error {
	if tx == nil {
		return errors.ErrInput.New("nil transaction")
	}
	if len(tx.SignedHash) != DigestLength {
		return errors.ErrInput.Newf("signed hash: %d bytes", len(tx.SignedHash))
	}
	if err := tx.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := tx.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if tx.Value < 0 {
		return errors.ErrInput.Newf("value: %d", tx.Value)
	}
	return nil
}
