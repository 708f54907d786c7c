package crypto

import (
	"golang.org/x/crypto/ed25519"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

var _ Signer = (*Ed25519)(nil)

// Ed25519 is a keypair signing with the ed25519 scheme. It is the
// kind of key an external (scheme B) validator would typically hold.
type Ed25519 struct {
	priv ed25519.PrivateKey
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *Ed25519 {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &Ed25519{priv: priv}
}

// Sign returns a matching signature for this private key
func (k *Ed25519) Sign(digest []byte) ([]byte, error) {
	if len(digest) != soter.DigestLength {
		return nil, errors.ErrInput.Newf("digest: %d bytes", len(digest))
	}
	return ed25519.Sign(k.priv, digest), nil
}

// PublicKey returns the raw public key bytes
func (k *Ed25519) PublicKey() []byte {
	return k.priv.Public().(ed25519.PublicKey)
}

// Address derives the identity of this keypair
func (k *Ed25519) Address() soter.Address {
	return soter.NewAddress(k.PublicKey())
}

// VerifyEd25519 reports whether sig is a valid signature of digest
// under the given raw public key.
func VerifyEd25519(pubkey, digest, sig []byte) bool {
	if len(pubkey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), digest, sig)
}
