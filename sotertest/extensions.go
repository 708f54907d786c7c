package sotertest

import (
	"context"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/crypto"
)

// Dir is a map backed soter.Directory implementation.
type Dir struct {
	exts map[string]soter.Extension
}

var _ soter.Directory = (*Dir)(nil)

// NewDir returns an empty directory.
func NewDir() *Dir {
	return &Dir{exts: make(map[string]soter.Extension)}
}

// Register installs an extension under the given identity,
// overwriting any previous registration. It returns the directory to
// allow chaining.
func (d *Dir) Register(addr soter.Address, ext soter.Extension) *Dir {
	d.exts[string(addr)] = ext
	return d
}

func (d *Dir) Lookup(addr soter.Address) (soter.Extension, bool) {
	ext, ok := d.exts[string(addr)]
	return ext, ok
}

// Caps is a plain capability set. Embed it to advertise roles.
type Caps []soter.Capability

func (c Caps) Supports(want soter.Capability) bool {
	for _, have := range c {
		if have == want {
			return true
		}
	}
	return false
}

// NativeValidator is a scheme A validator stub. It has no behaviour
// of its own because the account performs the curve recovery; it only
// advertises the capability.
type NativeValidator struct {
	Caps
}

// NewNativeValidator returns an extension advertising the native
// validation capability.
func NewNativeValidator() *NativeValidator {
	return &NativeValidator{Caps: Caps{soter.CapNativeValidator}}
}

// ExternalValidator is a scheme B validator mock returning a
// scripted result.
type ExternalValidator struct {
	Caps

	// Result is returned from every CheckSignature call.
	Result [4]byte

	// Err is returned from every CheckSignature call.
	Err error

	checkCall int
}

var _ soter.ExternalValidator = (*ExternalValidator)(nil)

// NewExternalValidator returns a mock that accepts every signature.
func NewExternalValidator() *ExternalValidator {
	return &ExternalValidator{
		Caps:   Caps{soter.CapExternalValidator},
		Result: soter.ValidSignatureMagic,
	}
}

func (v *ExternalValidator) CheckSignature(digest, sig []byte) ([4]byte, error) {
	v.checkCall++
	return v.Result, v.Err
}

func (v *ExternalValidator) CheckCallCount() int {
	return v.checkCall
}

// Ed25519Validator is a scheme B validator verifying ed25519
// signatures under a fixed public key.
type Ed25519Validator struct {
	Caps
	Pubkey []byte
}

var _ soter.ExternalValidator = (*Ed25519Validator)(nil)

// NewEd25519Validator returns an external validator bound to the
// given keypair.
func NewEd25519Validator(key *crypto.Ed25519) *Ed25519Validator {
	return &Ed25519Validator{
		Caps:   Caps{soter.CapExternalValidator},
		Pubkey: key.PublicKey(),
	}
}

func (v *Ed25519Validator) CheckSignature(digest, sig []byte) ([4]byte, error) {
	if crypto.VerifyEd25519(v.Pubkey, digest, sig) {
		return soter.ValidSignatureMagic, nil
	}
	return [4]byte{}, nil
}

// Module is a soter.Module mock with scriptable callbacks.
type Module struct {
	Caps

	// InstallFn, when set, is invoked by OnInstall. Use it to
	// exercise re-entrant registration from inside the install
	// callback.
	InstallFn func(ctx context.Context, payload []byte) error

	// InstallErr is returned by OnInstall when InstallFn is nil.
	InstallErr error

	// UninstallErr is returned by OnUninstall.
	UninstallErr error

	installCall   int
	uninstallCall int

	// Payload records what OnInstall received.
	Payload []byte
}

var _ soter.Module = (*Module)(nil)

// NewModule returns a module mock that succeeds both callbacks.
func NewModule() *Module {
	return &Module{Caps: Caps{soter.CapModule}}
}

func (m *Module) OnInstall(ctx context.Context, payload []byte) error {
	m.installCall++
	m.Payload = payload
	if m.InstallFn != nil {
		return m.InstallFn(ctx, payload)
	}
	return m.InstallErr
}

func (m *Module) OnUninstall(ctx context.Context) error {
	m.uninstallCall++
	return m.UninstallErr
}

func (m *Module) InstallCallCount() int   { return m.installCall }
func (m *Module) UninstallCallCount() int { return m.uninstallCall }

// Hook is a combined validation and execution hook mock. Every
// invocation is appended to Log (when set) so tests can assert call
// order across several hooks.
type Hook struct {
	Caps

	// Name labels this hook in the shared Log.
	Name string

	// Log, when set, collects invocations as "validate(Name)",
	// "pre(Name)" and "post(Name)" entries.
	Log *[]string

	// ValidateErr fails the validation phase.
	ValidateErr error

	// PreErr and PostErr fail the respective execution phases.
	PreErr  error
	PostErr error

	// HookData records the slot received by the last ValidateTx.
	HookData []byte

	validateCall int
	preCall      int
	postCall     int
}

var (
	_ soter.ValidationHook = (*Hook)(nil)
	_ soter.ExecutionHook  = (*Hook)(nil)
)

// NewHook returns a hook mock advertising both hook capabilities.
func NewHook(name string) *Hook {
	return &Hook{
		Caps: Caps{soter.CapValidationHook, soter.CapExecutionHook},
		Name: name,
	}
}

func (h *Hook) record(phase string) {
	if h.Log != nil {
		*h.Log = append(*h.Log, phase+"("+h.Name+")")
	}
}

func (h *Hook) ValidateTx(ctx context.Context, digest []byte, tx *soter.Tx, hookData []byte) error {
	h.validateCall++
	h.HookData = hookData
	h.record("validate")
	return h.ValidateErr
}

func (h *Hook) BeforeExecution(ctx context.Context, tx *soter.Tx) error {
	h.preCall++
	h.record("pre")
	return h.PreErr
}

func (h *Hook) AfterExecution(ctx context.Context, tx *soter.Tx) error {
	h.postCall++
	h.record("post")
	return h.PostErr
}

func (h *Hook) ValidateCallCount() int { return h.validateCall }
func (h *Hook) PreCallCount() int      { return h.preCall }
func (h *Hook) PostCallCount() int     { return h.postCall }
