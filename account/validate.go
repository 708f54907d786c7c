package account

import (
	"context"
	"time"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
	"github.com/soter-one/soter/x/hooks"
	"github.com/soter-one/soter/x/sigcodec"
	"github.com/soter-one/soter/x/validators"
)

// State is the position of a transaction in the authorizer state
// machine.
type State uint8

const (
	Received State = iota
	SignatureDecoded
	HooksEvaluated
	ValidatorDispatched
	Accepted
	Rejected
	AcceptedForEstimation
)

func (s State) String() string {
	switch s {
	case Received:
		return "received"
	case SignatureDecoded:
		return "signature decoded"
	case HooksEvaluated:
		return "hooks evaluated"
	case ValidatorDispatched:
		return "validator dispatched"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case AcceptedForEstimation:
		return "accepted for estimation"
	default:
		return "invalid"
	}
}

// Verdict is the outcome of ValidateTx, carrying the terminal state
// reached and the first concrete error on rejection.
type Verdict struct {
	State State
	Err   error
}

// Ok is true for both acceptance states.
func (v Verdict) Ok() bool {
	return v.State == Accepted || v.State == AcceptedForEstimation
}

// ValidateTx runs the full authorization pipeline over one
// transaction: decode the composite signature, burn the nonce, run
// the validation hooks and dispatch to the selected validator.
//
// The nonce advances exactly once per real transaction, before hook
// or signature evaluation, and its write survives a later rejection.
// Hook and validator evaluation run against a savepoint that commits
// only on acceptance. An estimation stub signature short circuits to
// AcceptedForEstimation without touching any state.
func (a *Account) ValidateTx(ctx context.Context, tx *soter.Tx, sigBlob []byte) (v Verdict, err error) {
	start := time.Now()
	defer func() {
		if err != nil && v.State != Rejected {
			v = Verdict{State: Rejected, Err: err}
		}
		a.logger.Debug("validate",
			"state", v.State,
			"duration", time.Since(start),
		)
	}()
	defer errors.Recover(&err)

	if err := tx.Validate(); err != nil {
		return a.reject(err)
	}

	sig, err := sigcodec.Decode(sigBlob)
	if err != nil {
		return a.reject(err)
	}
	if sig.Estimation {
		return Verdict{State: AcceptedForEstimation}, nil
	}

	if err := checkAndIncrementNonce(a.db, tx.Nonce); err != nil {
		return a.reject(err)
	}

	// Hooks and the validator are both always evaluated; the
	// transaction is accepted iff both pass, and on rejection the
	// hook error takes precedence as the first one encountered.
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
	hookErr := hooks.RunValidation(ctx, cache, a.dir, tx.SignedHash, tx, sig.HookData)
	valErr := validators.Authenticate(cache, a.dir, sig.Validator, tx.SignedHash, sig.Raw)

	if hookErr == nil && valErr == nil {
		cache.Write()
		committed = true
		return Verdict{State: Accepted}, nil
	}
	first := hookErr
	if first == nil {
		first = valErr
	}
	return a.reject(first)
}

func (a *Account) reject(err error) (Verdict, error) {
	return Verdict{State: Rejected, Err: err}, err
}

// IsValidSignature is the off-chain signature verification entry
// point. It delegates to the same validator registry the authorizer
// uses, without hooks, nonce or any state change. An estimation stub
// never passes a real verification.
func IsValidSignature(db soter.ReadOnlyKVStore, dir soter.Directory, digest, sigBlob []byte) error {
	sig, err := sigcodec.Decode(sigBlob)
	if err != nil {
		return err
	}
	if sig.Estimation {
		return errors.ErrUnauthorized.New("estimation stub")
	}
	return validators.Authenticate(db, dir, sig.Validator, digest, sig.Raw)
}
