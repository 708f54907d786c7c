package hooks

import (
	"bytes"
	"context"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

// MaxHooks caps each pipeline. Every registered hook runs on every
// transaction, so an unbounded list would let a single install make
// the account unusable.
const MaxHooks = 16

var (
	validationKey = []byte("hooks:validation")
	executionKey  = []byte("hooks:execution")
)

func pipelineKey(c soter.Capability) ([]byte, error) {
	switch c {
	case soter.CapValidationHook:
		return validationKey, nil
	case soter.CapExecutionHook:
		return executionKey, nil
	default:
		return nil, errors.ErrInput.Newf("not a hook capability: %d", c)
	}
}

func loadPipeline(db soter.ReadOnlyKVStore, key []byte) []soter.Address {
	raw := db.Get(key)
	set := make([]soter.Address, 0, len(raw)/soter.AddressLength)
	for i := 0; i+soter.AddressLength <= len(raw); i += soter.AddressLength {
		set = append(set, soter.Address(raw[i:i+soter.AddressLength]))
	}
	return set
}

func storePipeline(db soter.KVStore, key []byte, set []soter.Address) {
	var raw bytes.Buffer
	for _, a := range set {
		raw.Write(a)
	}
	if raw.Len() == 0 {
		db.Delete(key)
		return
	}
	db.Set(key, raw.Bytes())
}

// Add appends the identity to the pipeline selected by the hook
// capability. The position in the pipeline is the position in the
// run order and cannot be chosen.
func Add(ctx context.Context, db soter.KVStore, auth soter.Authenticator, dir soter.Directory, c soter.Capability, id soter.Address) error {
	key, err := pipelineKey(c)
	if err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "hook")
	}
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}

	ext, ok := dir.Lookup(id)
	if !ok || !ext.Supports(c) {
		return errors.ErrUnsupported.Newf("hook %s", id)
	}

	set := loadPipeline(db, key)
	for _, a := range set {
		if a.Equals(id) {
			return errors.ErrDuplicate.Newf("hook %s", id)
		}
	}
	if len(set) >= MaxHooks {
		return errors.ErrLimit.Newf("pipeline full: %d hooks", MaxHooks)
	}
	storePipeline(db, key, append(set, id))
	return nil
}

// Remove takes the identity out of the selected pipeline. The
// relative order of the remaining hooks is preserved.
func Remove(ctx context.Context, db soter.KVStore, auth soter.Authenticator, c soter.Capability, id soter.Address) error {
	key, err := pipelineKey(c)
	if err != nil {
		return err
	}
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}

	set := loadPipeline(db, key)
	for i, a := range set {
		if a.Equals(id) {
			storePipeline(db, key, append(set[:i], set[i+1:]...))
			return nil
		}
	}
	return errors.ErrNotFound.Newf("hook %s", id)
}

// List returns the pipeline in run order.
func List(db soter.ReadOnlyKVStore, c soter.Capability) ([]soter.Address, error) {
	key, err := pipelineKey(c)
	if err != nil {
		return nil, err
	}
	return loadPipeline(db, key), nil
}

// RunValidation feeds the digest, the transaction snapshot and each
// hook's data slot to the validation pipeline in order. The slots
// pair with the pipeline positionally, so their count must match the
// number of installed hooks exactly. The first veto wins.
func RunValidation(ctx context.Context, db soter.ReadOnlyKVStore, dir soter.Directory, digest []byte, tx *soter.Tx, hookData [][]byte) error {
	set := loadPipeline(db, validationKey)
	if len(hookData) != len(set) {
		return errors.ErrInput.Newf("%d hook data slots for %d hooks", len(hookData), len(set))
	}
	for i, id := range set {
		hook, err := resolve(dir, id)
		if err != nil {
			return err
		}
		vh, ok := hook.(soter.ValidationHook)
		if !ok {
			return errors.ErrState.Newf("hook %s lost validation support", id)
		}
		hookCtx, err := soter.WithNestedCall(ctx, id)
		if err != nil {
			return err
		}
		if err := vh.ValidateTx(hookCtx, digest, tx, hookData[i]); err != nil {
			return errors.ErrHook.Newf("hook %s: %v", id, err)
		}
	}
	return nil
}

// RunExecution wraps the inner call with the execution pipeline:
// BeforeExecution phases in run order, then inner, then the
// AfterExecution phases in reverse. Any failure aborts immediately,
// later phases do not run. Callers provide the savepoint that makes
// the whole sandwich all or nothing.
func RunExecution(ctx context.Context, db soter.ReadOnlyKVStore, dir soter.Directory, tx *soter.Tx, inner func(context.Context) error) error {
	set := loadPipeline(db, executionKey)

	run := make([]soter.ExecutionHook, len(set))
	for i, id := range set {
		hook, err := resolve(dir, id)
		if err != nil {
			return err
		}
		eh, ok := hook.(soter.ExecutionHook)
		if !ok {
			return errors.ErrState.Newf("hook %s lost execution support", id)
		}
		run[i] = eh
	}

	for i, eh := range run {
		hookCtx, err := soter.WithNestedCall(ctx, set[i])
		if err != nil {
			return err
		}
		if err := eh.BeforeExecution(hookCtx, tx); err != nil {
			return errors.ErrHook.Newf("hook %s: %v", set[i], err)
		}
	}

	if err := inner(ctx); err != nil {
		return err
	}

	for i := len(run) - 1; i >= 0; i-- {
		hookCtx, err := soter.WithNestedCall(ctx, set[i])
		if err != nil {
			return err
		}
		if err := run[i].AfterExecution(hookCtx, tx); err != nil {
			return errors.ErrHook.Newf("hook %s: %v", set[i], err)
		}
	}
	return nil
}

func resolve(dir soter.Directory, id soter.Address) (soter.Extension, error) {
	ext, ok := dir.Lookup(id)
	if !ok {
		return nil, errors.ErrState.Newf("hook %s not resolvable", id)
	}
	return ext, nil
}
