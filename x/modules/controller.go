package modules

import (
	"context"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
)

var keyPrefix = []byte("module:")

func moduleKey(id soter.Address) []byte {
	return append(keyPrefix, id...)
}

// Enabled returns true iff the identity is an installed module.
func Enabled(db soter.ReadOnlyKVStore, id soter.Address) bool {
	return db.Has(moduleKey(id))
}

// Add installs the identity as a module and runs its OnInstall
// callback with the payload. The marker is written before the
// callback fires, so the callback already observes the module as
// enabled and may call back into the account on its own authority.
//
// Add does not undo anything on callback failure. Callers must run
// it inside a savepoint and discard on error, which rolls back the
// registration together with everything the callback did.
func Add(ctx context.Context, db soter.KVStore, auth soter.Authenticator, dir soter.Directory, id soter.Address, payload []byte) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "module")
	}
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}

	ext, ok := dir.Lookup(id)
	if !ok || !ext.Supports(soter.CapModule) {
		return errors.ErrUnsupported.Newf("module %s", id)
	}
	mod, ok := ext.(soter.Module)
	if !ok {
		return errors.ErrUnsupported.Newf("module %s", id)
	}
	if Enabled(db, id) {
		return errors.ErrDuplicate.Newf("module %s", id)
	}

	modCtx, err := soter.WithNestedCall(ctx, id)
	if err != nil {
		return err
	}
	db.Set(moduleKey(id), []byte{1})
	if err := mod.OnInstall(modCtx, payload); err != nil {
		return errors.ErrInit.Newf("install %s: %v", id, err)
	}
	return nil
}

// Remove uninstalls the identity. The OnUninstall callback runs best
// effort: its error is logged and ignored so that a misbehaving
// module cannot hold the account hostage. The marker is deleted
// before the callback fires, so the module is already revoked while
// it cleans up.
func Remove(ctx context.Context, db soter.KVStore, auth soter.Authenticator, dir soter.Directory, id soter.Address) error {
	if err := auth.Authorize(ctx, db); err != nil {
		return err
	}
	if !Enabled(db, id) {
		return errors.ErrNotFound.Newf("module %s", id)
	}
	db.Delete(moduleKey(id))

	ext, ok := dir.Lookup(id)
	if !ok {
		return nil
	}
	mod, ok := ext.(soter.Module)
	if !ok {
		return nil
	}
	modCtx, err := soter.WithNestedCall(ctx, id)
	if err != nil {
		soter.GetLogger(ctx).Error("uninstall callback skipped", "module", id, "err", err)
		return nil
	}
	if err := mod.OnUninstall(modCtx); err != nil {
		soter.GetLogger(ctx).Error("uninstall callback failed", "module", id, "err", err)
	}
	return nil
}
