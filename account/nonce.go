package account

import (
	"encoding/binary"
	"math"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

var nonceKey = []byte("nonce")

func currentNonce(db soter.ReadOnlyKVStore) uint64 {
	raw := db.Get(nonceKey)
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

// checkAndIncrementNonce verifies the declared value against the
// counter and advances it. The write goes straight to the given
// store, never a savepoint: a transaction that is later rejected must
// still have consumed its nonce.
func checkAndIncrementNonce(db soter.KVStore, declared uint64) error {
	expected := currentNonce(db)
	if declared != expected {
		return errors.ErrNonce.Newf("declared %d, expected %d", declared, expected)
	}
	if expected == math.MaxUint64 {
		return errors.ErrOverflow.New("nonce counter exhausted")
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, expected+1)
	db.Set(nonceKey, next)
	return nil
}
