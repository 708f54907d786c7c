package crypto

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

func TestSecp256k1SignRecover(t *testing.T) {
	key := GenPrivKeySecp256k1()
	digest := sha256.Sum256([]byte("transfer 100 to bob"))

	sig, err := key.Sign(digest[:])
	require.NoError(t, err)

	signer, err := RecoverSigner(digest[:], sig)
	require.NoError(t, err)
	assert.True(t, key.Address().Equals(signer))

	// a different digest must recover a different identity
	other := sha256.Sum256([]byte("transfer 100 to eve"))
	signer2, err := RecoverSigner(other[:], sig)
	if err == nil {
		assert.False(t, key.Address().Equals(signer2))
	}
}

func TestSecp256k1RejectsBadDigest(t *testing.T) {
	key := GenPrivKeySecp256k1()

	_, err := key.Sign([]byte("short"))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = RecoverSigner([]byte("short"), make([]byte, 65))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestRecoverRejectsGarbage(t *testing.T) {
	digest := sha256.Sum256([]byte("payload"))
	_, err := RecoverSigner(digest[:], []byte("not a signature"))
	assert.True(t, errors.ErrMalformedSig.Is(err))
}

func TestEd25519SignVerify(t *testing.T) {
	key := GenPrivKeyEd25519()
	digest := sha256.Sum256([]byte("external scheme payload"))

	sig, err := key.Sign(digest[:])
	require.NoError(t, err)

	assert.True(t, VerifyEd25519(key.PublicKey(), digest[:], sig))
	assert.False(t, VerifyEd25519(key.PublicKey(), digest[:], append(sig[:len(sig)-1], sig[len(sig)-1]^1)))

	require.NoError(t, key.Address().Validate())
	assert.Equal(t, soter.AddressLength, len(key.Address()))
}
