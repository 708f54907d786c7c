package crypto

import (
	"github.com/btcsuite/btcd/btcec"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

// Signer produces signatures the account core can verify.
type Signer interface {
	Sign(digest []byte) ([]byte, error)
	PublicKey() []byte
	Address() soter.Address
}

var _ Signer = (*Secp256k1)(nil)

// Secp256k1 is a keypair signing in the compact recoverable format.
// The signature alone is enough to recover the signer identity, which
// is what the native validation scheme relies on.
type Secp256k1 struct {
	priv *btcec.PrivateKey
}

// GenPrivKeySecp256k1 returns a random new private key
func GenPrivKeySecp256k1() *Secp256k1 {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		panic(err)
	}
	return &Secp256k1{priv: priv}
}

// PrivKeySecp256k1FromBytes restores a key from its raw form
func PrivKeySecp256k1FromBytes(raw []byte) *Secp256k1 {
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), raw)
	return &Secp256k1{priv: priv}
}

// Sign returns a compact recoverable signature over the digest
func (k *Secp256k1) Sign(digest []byte) ([]byte, error) {
	if len(digest) != soter.DigestLength {
		return nil, errors.ErrInput.Newf("digest: %d bytes", len(digest))
	}
	sig, err := btcec.SignCompact(btcec.S256(), k.priv, digest, true)
	if err != nil {
		return nil, errors.Wrap(err, "compact sign")
	}
	return sig, nil
}

// PublicKey returns the compressed public key bytes
func (k *Secp256k1) PublicKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// Address derives the identity of this keypair
func (k *Secp256k1) Address() soter.Address {
	return soter.NewAddress(k.PublicKey())
}

// RecoverSigner recovers the identity that produced the given compact
// signature over the digest. The recovery itself authenticates: a
// signature by a different key recovers a different identity, so the
// caller only needs to compare addresses.
func RecoverSigner(digest, sig []byte) (soter.Address, error) {
	if len(digest) != soter.DigestLength {
		return nil, errors.ErrInput.Newf("digest: %d bytes", len(digest))
	}
	pub, compressed, err := btcec.RecoverCompact(btcec.S256(), sig, digest)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMalformedSig, err.Error())
	}
	if compressed {
		return soter.NewAddress(pub.SerializeCompressed()), nil
	}
	return soter.NewAddress(pub.SerializeUncompressed()), nil
}
