package soter

import (
	"context"

	"github.com/soter-one/soter/errors"
)

// Scheme selects one of the two supported signature verification
// schemes. It is a tagged value with a dispatch table in
// x/validators, not a subtype hierarchy.
type Scheme byte

const (
	// SchemeNative verifies by recovering the signer identity from
	// the signature itself (cheap curve recovery). The native set is
	// the account's recovery path and must never become empty.
	SchemeNative Scheme = iota + 1

	// SchemeExternal delegates verification to an installed
	// extension that implements an arbitrary check.
	SchemeExternal
)

func (s Scheme) String() string {
	switch s {
	case SchemeNative:
		return "native"
	case SchemeExternal:
		return "external"
	default:
		return "invalid"
	}
}

// Validate returns an error unless this is a known scheme.
func (s Scheme) Validate() error {
	switch s {
	case SchemeNative, SchemeExternal:
		return nil
	default:
		return errors.ErrInput.Newf("signature scheme: %d", s)
	}
}

// Capability names a role an extension can serve for the account.
// Registration of an identity for a role it does not advertise is
// refused.
type Capability byte

const (
	CapNativeValidator Capability = iota + 1
	CapExternalValidator
	CapModule
	CapValidationHook
	CapExecutionHook
)

// ValidSignatureMagic is the fixed return value an external validator
// must produce for a signature it accepts. Any other value is a
// rejection, even if no error is returned.
var ValidSignatureMagic = [4]byte{0x16, 0x26, 0xba, 0x7e}

// Extension is the single boundary type through which the account
// calls anything installed under an identity. All validator, module
// and hook invocations pass through it; there is no other dispatch
// path.
type Extension interface {
	// Supports reports whether this extension can serve the given
	// role. Registries consult it before accepting an identity.
	Supports(c Capability) bool
}

// ExternalValidator is the scheme-B signature-check entry point.
type ExternalValidator interface {
	Extension

	// CheckSignature returns ValidSignatureMagic iff the signature
	// is valid for the digest. A non-nil error or any other return
	// value rejects the signature.
	CheckSignature(digest []byte, sig []byte) ([4]byte, error)
}

// Module is an installed extension granted the same mutation rights
// as the account itself.
type Module interface {
	Extension

	// OnInstall is invoked once, atomically with the registration.
	// The context carries the module's own identity as caller, so
	// the module may call back into the account (eg. to register
	// its hooks). A returned error aborts the installation.
	OnInstall(ctx context.Context, payload []byte) error

	// OnUninstall is invoked on removal, best effort. A returned
	// error is logged and does not block the removal.
	OnUninstall(ctx context.Context) error
}

// ValidationHook is consulted before signature dispatch on every
// transaction.
type ValidationHook interface {
	Extension

	// ValidateTx receives the signed digest, the transaction
	// snapshot and this hook's data slot from the composite
	// signature. A returned error fails the validation pipeline.
	ValidateTx(ctx context.Context, digest []byte, tx *Tx, hookData []byte) error
}

// ExecutionHook wraps the side effecting call of every transaction.
type ExecutionHook interface {
	Extension

	// BeforeExecution runs before the inner call, in installation
	// order across hooks.
	BeforeExecution(ctx context.Context, tx *Tx) error

	// AfterExecution runs after the inner call, in reverse
	// installation order, mirroring nested scopes.
	AfterExecution(ctx context.Context, tx *Tx) error
}

// Directory resolves an identity into the callable extension
// installed under it. It is owned by the environment that deployed
// the account; the account only reads it.
type Directory interface {
	Lookup(Address) (Extension, bool)
}

// Authenticator decides whether the caller bound to the context may
// mutate account state. It is the single authorization seam shared by
// all registries: a mutation is permitted iff the caller is the
// account itself or a currently enabled module.
type Authenticator interface {
	Authorize(ctx context.Context, db KVStore) error
}
