package sotertest

import (
	"context"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

// Auth is a mock implementing the soter.Authenticator interface.
//
// It permits exactly the listed addresses, regardless of any module
// state. Use it to test registry controllers in isolation from the
// account aggregate.
type Auth struct {
	// Permitted are the callers this authenticator accepts.
	Permitted []soter.Address
}

var _ soter.Authenticator = (*Auth)(nil)

func (a *Auth) Authorize(ctx context.Context, db soter.KVStore) error {
	caller := soter.GetCaller(ctx)
	for _, p := range a.Permitted {
		if caller.Equals(p) {
			return nil
		}
	}
	return errors.ErrUnauthorized.Newf("caller %s", caller)
}
