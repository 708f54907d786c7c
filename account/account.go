package account

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
	"github.com/soter-one/soter/x/hooks"
	"github.com/soter-one/soter/x/modules"
	"github.com/soter-one/soter/x/validators"
)

// CallFunc performs an inner side effecting call of a transaction.
// It writes through the store it is given, which is always a
// savepoint owned by the execution guard.
type CallFunc func(ctx context.Context, db soter.KVStore, tx *soter.Tx) error

// Account is the aggregate owning one account's authorization state.
// It is not safe for concurrent use; the processing model is one
// operation at a time.
type Account struct {
	addr       soter.Address
	db         soter.CacheableKVStore
	dir        soter.Directory
	router     CallFunc
	privileged map[string]CallFunc
	logger     log.Logger
}

var _ soter.Authenticator = (*Account)(nil)

// Option configures an Account during construction.
type Option func(*Account)

// WithRouter sets the call path for ordinary targets.
func WithRouter(fn CallFunc) Option {
	return func(a *Account) { a.router = fn }
}

// WithPrivilegedTarget registers a specialized call path for one
// target identity. Privileged targets bypass the router.
func WithPrivilegedTarget(target soter.Address, fn CallFunc) Option {
	return func(a *Account) { a.privileged[string(target)] = fn }
}

// WithLogger sets the account logger.
func WithLogger(logger log.Logger) Option {
	return func(a *Account) { a.logger = logger }
}

// NewAccount builds an Account over existing state. The store may be
// empty, in which case Init must seed the native validator set before
// any transaction can be validated.
func NewAccount(addr soter.Address, db soter.CacheableKVStore, dir soter.Directory, opts ...Option) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	if db == nil {
		return nil, errors.ErrInput.New("nil store")
	}
	if dir == nil {
		return nil, errors.ErrInput.New("nil directory")
	}
	a := &Account{
		addr:       addr,
		db:         db,
		dir:        dir,
		privileged: make(map[string]CallFunc),
		logger:     soter.DefaultLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("account", addr)
	return a, nil
}

// Address returns the account's own identity.
func (a *Account) Address() soter.Address {
	return a.addr
}

// Init seeds the native validator set. It is invoked once by the
// deploying environment; the set must be non empty.
func (a *Account) Init(initialValidators []soter.Address) error {
	return validators.Init(a.db, initialValidators)
}

// Authorize is the single authorization predicate of the account: a
// mutation is permitted iff the caller bound to the context is the
// account itself or a currently enabled module. The module registry
// is consulted on every call, so removing a module revokes its
// rights immediately.
func (a *Account) Authorize(ctx context.Context, db soter.KVStore) error {
	caller := soter.GetCaller(ctx)
	if caller.Equals(a.addr) {
		return nil
	}
	if caller != nil && modules.Enabled(db, caller) {
		return nil
	}
	return errors.ErrUnauthorized.Newf("caller %s", caller)
}

// AddValidator enables the identity under the given scheme.
func (a *Account) AddValidator(ctx context.Context, s soter.Scheme, id soter.Address) error {
	return validators.AddValidator(ctx, a.db, a, a.dir, s, id)
}

// RemoveValidator disables the identity under the given scheme.
func (a *Account) RemoveValidator(ctx context.Context, s soter.Scheme, id soter.Address) error {
	return validators.RemoveValidator(ctx, a.db, a, s, id)
}

// IsValidator returns true iff the identity is enabled under the
// given scheme.
func (a *Account) IsValidator(s soter.Scheme, id soter.Address) bool {
	return validators.IsValidator(a.db, s, id)
}

// ListValidators returns a scheme's members in insertion order.
func (a *Account) ListValidators(s soter.Scheme) ([]soter.Address, error) {
	return validators.ListValidators(a.db, s)
}

// AddModule installs the identity as a module, atomically with its
// install callback. The callback runs against a savepoint that also
// becomes the account's live store for the duration of the install,
// so re-entrant registrations land in the same savepoint and roll
// back together on failure.
func (a *Account) AddModule(ctx context.Context, id soter.Address, payload []byte) error {
	cache := a.db.CacheWrap()
	prev := a.db
	a.db = cache
	err := modules.Add(ctx, cache, a, a.dir, id, payload)
	a.db = prev
	if err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}

// RemoveModule uninstalls the identity. The uninstall callback runs
// best effort.
func (a *Account) RemoveModule(ctx context.Context, id soter.Address) error {
	return modules.Remove(soter.WithLogger(ctx, a.logger), a.db, a, a.dir, id)
}

// IsModuleEnabled returns true iff the identity is an installed
// module.
func (a *Account) IsModuleEnabled(id soter.Address) bool {
	return modules.Enabled(a.db, id)
}

// AddHook appends the identity to the pipeline selected by the hook
// capability.
func (a *Account) AddHook(ctx context.Context, c soter.Capability, id soter.Address) error {
	return hooks.Add(ctx, a.db, a, a.dir, c, id)
}

// RemoveHook takes the identity out of the selected pipeline.
func (a *Account) RemoveHook(ctx context.Context, c soter.Capability, id soter.Address) error {
	return hooks.Remove(ctx, a.db, a, c, id)
}

// ListHooks returns the selected pipeline in run order.
func (a *Account) ListHooks(c soter.Capability) ([]soter.Address, error) {
	return hooks.List(a.db, c)
}

// Nonce returns the next expected nonce value.
func (a *Account) Nonce() uint64 {
	return currentNonce(a.db)
}
