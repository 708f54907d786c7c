package validators

import (
	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

// Init seeds the native validator set at account creation. The set
// must not be empty, otherwise the account starts without any
// recovery path, and must not carry duplicates.
func Init(db soter.KVStore, initial []soter.Address) error {
	if len(initial) == 0 {
		return errors.ErrInit.New("empty native validator set")
	}
	if db.Has(nativeKey) {
		return errors.ErrInit.New("validators already initialized")
	}
	set := make([]soter.Address, 0, len(initial))
	for _, id := range initial {
		if err := id.Validate(); err != nil {
			return errors.Wrap(err, "initial validator")
		}
		if member(set, id) {
			return errors.ErrDuplicate.Newf("initial validator %s", id)
		}
		set = append(set, id)
	}
	storeSet(db, soter.SchemeNative, set)
	return nil
}
