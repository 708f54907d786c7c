package account

import (
	"context"
	"time"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
	"github.com/soter-one/soter/x/hooks"
)

// Execute performs the side effecting call of an accepted
// transaction, wrapped by the execution hook pipeline inside one
// savepoint. A privileged target is dispatched to its registered
// call path, anything else goes through the router.
//
// With allowFailure the inner call's error is absorbed and the
// surrounding hooks still complete; without it the error aborts the
// whole operation. Any hook failure, before or after a successful
// inner call, discards the savepoint including the inner call's
// writes.
func (a *Account) Execute(ctx context.Context, tx *soter.Tx, allowFailure bool) (err error) {
	start := time.Now()
	defer func() {
		a.logger.Debug("execute",
			"ok", err == nil,
			"duration", time.Since(start),
		)
	}()
	defer errors.Recover(&err)

	if err := tx.Validate(); err != nil {
		return err
	}

	cache := a.db.CacheWrap()
	prev := a.db
	a.db = cache
	committed := false
	defer func() {
		a.db = prev
		if !committed {
			cache.Discard()
		}
	}()

	inner := func(innerCtx context.Context) error {
		callErr := a.call(innerCtx, cache, tx)
		if callErr == nil {
			return nil
		}
		if allowFailure {
			a.logger.Info("inner call failed, continuing",
				"target", tx.Target,
				"err", callErr,
			)
			return nil
		}
		return errors.ErrExecution.Newf("target %s: %v", tx.Target, callErr)
	}
	if err := hooks.RunExecution(ctx, cache, a.dir, tx, inner); err != nil {
		return err
	}
	cache.Write()
	committed = true
	return nil
}

func (a *Account) call(ctx context.Context, db soter.KVStore, tx *soter.Tx) error {
	if fn, ok := a.privileged[string(tx.Target)]; ok {
		return fn(ctx, db, tx)
	}
	if a.router == nil {
		return errors.ErrState.New("no call router configured")
	}
	return a.router(ctx, db, tx)
}
