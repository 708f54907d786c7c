package validators

import (
	"bytes"
	"context"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/crypto"
	"github.com/soter-one/soter/errors"
)

//----------------- Controller ------------------
//
// Place actual business logic here.
// Anything that may be called from another extension can be public
// to encourage composition. Anything unsafe to be called from
// arbitrary extensions should be private.
//
// Controller should contain package-level functions, not
// objects with state, to make it easy to call from other extensions.

var (
	nativeKey   = []byte("validators:native")
	externalKey = []byte("validators:external")
)

func schemeKey(s soter.Scheme) []byte {
	switch s {
	case soter.SchemeNative:
		return nativeKey
	case soter.SchemeExternal:
		return externalKey
	default:
		panic("unknown scheme")
	}
}

func schemeCap(s soter.Scheme) soter.Capability {
	switch s {
	case soter.SchemeNative:
		return soter.CapNativeValidator
	case soter.SchemeExternal:
		return soter.CapExternalValidator
	default:
		panic("unknown scheme")
	}
}

// loadSet returns the ordered member list of a scheme. The record is
// a concatenation of fixed size addresses, appended in insertion
// order.
func loadSet(db soter.ReadOnlyKVStore, s soter.Scheme) []soter.Address {
	raw := db.Get(schemeKey(s))
	set := make([]soter.Address, 0, len(raw)/soter.AddressLength)
	for i := 0; i+soter.AddressLength <= len(raw); i += soter.AddressLength {
		set = append(set, soter.Address(raw[i:i+soter.AddressLength]))
	}
	return set
}

func storeSet(db soter.KVStore, s soter.Scheme, set []soter.Address) {
	var raw bytes.Buffer
	for _, a := range set {
		raw.Write(a)
	}
	if raw.Len() == 0 {
		db.Delete(schemeKey(s))
		return
	}
	db.Set(schemeKey(s), raw.Bytes())
}

func member(set []soter.Address, id soter.Address) bool {
	for _, a := range set {
		if a.Equals(id) {
			return true
		}
	}
	return false
}

// IsValidator returns true iff the identity is enabled under the
// given scheme.
func IsValidator(db soter.ReadOnlyKVStore, s soter.Scheme, id soter.Address) bool {
	if s.Validate() != nil {
		return false
	}
	return member(loadSet(db, s), id)
}

// ListValidators returns the members of a scheme in insertion order.
// This listing is the audit source of truth for the registry.
func ListValidators(db soter.ReadOnlyKVStore, s soter.Scheme) ([]soter.Address, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return loadSet(db, s), nil
}

// AddValidator appends the identity to the scheme's set. The caller
// must pass the account's authorization predicate and the extension
// registered in the directory must advertise the scheme capability.
func AddValidator(ctx context.Context, db soter.KVStore, auth soter.Authenticator, dir soter.Directory, s soter.Scheme, id soter.Address) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "validator")
	}
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}

	ext, ok := dir.Lookup(id)
	if !ok || !ext.Supports(schemeCap(s)) {
		return errors.ErrUnsupported.Newf("%s validator %s", s, id)
	}

	set := loadSet(db, s)
	if member(set, id) {
		return errors.ErrDuplicate.Newf("%s validator %s", s, id)
	}
	storeSet(db, s, append(set, id))
	return nil
}

// RemoveValidator removes the identity from the scheme's set. The
// sole remaining native member cannot be removed: it is the only
// recovery path of the account.
func RemoveValidator(ctx context.Context, db soter.KVStore, auth soter.Authenticator, s soter.Scheme, id soter.Address) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}

	set := loadSet(db, s)
	if s == soter.SchemeNative && len(set) == 1 && set[0].Equals(id) {
		return errors.ErrLastValidator.Newf("%s", id)
	}
	for i, a := range set {
		if a.Equals(id) {
			storeSet(db, s, append(set[:i], set[i+1:]...))
			return nil
		}
	}
	return errors.ErrNotFound.Newf("%s validator %s", s, id)
}

// Authenticate verifies the raw signature over the digest using the
// scheme the identity is enabled under. An identity enabled in
// neither scheme is an unknown validator.
func Authenticate(db soter.ReadOnlyKVStore, dir soter.Directory, id soter.Address, digest, rawSig []byte) error {
	switch {
	case member(loadSet(db, soter.SchemeNative), id):
		signer, err := crypto.RecoverSigner(digest, rawSig)
		if err != nil {
			return err
		}
		if !signer.Equals(id) {
			return errors.ErrUnauthorized.Newf("signature recovers %s, not %s", signer, id)
		}
		return nil

	case member(loadSet(db, soter.SchemeExternal), id):
		ext, ok := dir.Lookup(id)
		if !ok {
			return errors.ErrState.Newf("external validator %s not resolvable", id)
		}
		checker, ok := ext.(soter.ExternalValidator)
		if !ok {
			return errors.ErrUnsupported.Newf("external validator %s", id)
		}
		magic, err := checker.CheckSignature(digest, rawSig)
		if err != nil {
			return errors.Wrap(err, "check signature")
		}
		if magic != soter.ValidSignatureMagic {
			return errors.ErrUnauthorized.Newf("validator %s rejected signature", id)
		}
		return nil

	default:
		return errors.ErrNotFound.Newf("unknown validator %s", id)
	}
}
