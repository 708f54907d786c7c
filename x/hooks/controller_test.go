package hooks

import (
	"context"
	"testing"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
	"github.com/soter-one/soter/sotertest"
	"github.com/soter-one/soter/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Test hook registry works as intended", t, func() {
		owner := sotertest.SequentialAddress(1)
		h1 := sotertest.SequentialAddress(2)
		h2 := sotertest.SequentialAddress(3)
		stranger := sotertest.SequentialAddress(4)

		dir := sotertest.NewDir().
			Register(h1, sotertest.NewHook("one")).
			Register(h2, sotertest.NewHook("two"))

		auth := &sotertest.Auth{Permitted: []soter.Address{owner}}
		ctx := soter.WithCaller(context.Background(), owner)

		kv := store.MemStore()

		Convey("Hooks are listed in installation order", func() {
			So(Add(ctx, kv, auth, dir, soter.CapValidationHook, h1), ShouldBeNil)
			So(Add(ctx, kv, auth, dir, soter.CapValidationHook, h2), ShouldBeNil)

			set, err := List(kv, soter.CapValidationHook)
			So(err, ShouldBeNil)
			So(set, ShouldResemble, []soter.Address{h1, h2})

			Convey("The pipelines are independent", func() {
				set, err := List(kv, soter.CapExecutionHook)
				So(err, ShouldBeNil)
				So(set, ShouldBeEmpty)
			})

			Convey("Removal keeps the order of the rest", func() {
				So(Remove(ctx, kv, auth, soter.CapValidationHook, h1), ShouldBeNil)

				set, err := List(kv, soter.CapValidationHook)
				So(err, ShouldBeNil)
				So(set, ShouldResemble, []soter.Address{h2})
			})

			Convey("Duplicate add fails and leaves the pipeline unchanged", func() {
				err := Add(ctx, kv, auth, dir, soter.CapValidationHook, h1)
				So(errors.ErrDuplicate.Is(err), ShouldBeTrue)

				set, err := List(kv, soter.CapValidationHook)
				So(err, ShouldBeNil)
				So(set, ShouldResemble, []soter.Address{h1, h2})
			})
		})

		Convey("The pipeline capacity is enforced", func() {
			for i := 0; i < MaxHooks; i++ {
				id := sotertest.SequentialAddress(byte(100 + i))
				dir.Register(id, sotertest.NewHook("bulk"))
				So(Add(ctx, kv, auth, dir, soter.CapExecutionHook, id), ShouldBeNil)
			}
			overflow := sotertest.SequentialAddress(200)
			dir.Register(overflow, sotertest.NewHook("overflow"))

			err := Add(ctx, kv, auth, dir, soter.CapExecutionHook, overflow)
			So(errors.ErrLimit.Is(err), ShouldBeTrue)

			set, err := List(kv, soter.CapExecutionHook)
			So(err, ShouldBeNil)
			So(len(set), ShouldEqual, MaxHooks)
		})

		Convey("Extension without the hook capability cannot join", func() {
			modOnly := sotertest.NewModule()
			modID := sotertest.SequentialAddress(5)
			dir.Register(modID, modOnly)

			err := Add(ctx, kv, auth, dir, soter.CapValidationHook, modID)
			So(errors.ErrUnsupported.Is(err), ShouldBeTrue)
		})

		Convey("A non hook capability is rejected", func() {
			err := Add(ctx, kv, auth, dir, soter.CapModule, h1)
			So(errors.ErrInput.Is(err), ShouldBeTrue)

			_, err = List(kv, soter.CapNativeValidator)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("Unauthorized caller never mutates", func() {
			badCtx := soter.WithCaller(context.Background(), stranger)

			err := Add(badCtx, kv, auth, dir, soter.CapValidationHook, h1)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			set, err := List(kv, soter.CapValidationHook)
			So(err, ShouldBeNil)
			So(set, ShouldBeEmpty)
		})

		Convey("Removing an absent hook fails not found", func() {
			err := Remove(ctx, kv, auth, soter.CapValidationHook, h1)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}

func TestRunValidation(t *testing.T) {
	Convey("Test validation pipeline run", t, func() {
		owner := sotertest.SequentialAddress(1)
		id1 := sotertest.SequentialAddress(2)
		id2 := sotertest.SequentialAddress(3)

		var calls []string
		one := sotertest.NewHook("one")
		one.Log = &calls
		two := sotertest.NewHook("two")
		two.Log = &calls

		dir := sotertest.NewDir().Register(id1, one).Register(id2, two)
		auth := &sotertest.Auth{Permitted: []soter.Address{owner}}
		ctx := soter.WithCaller(context.Background(), owner)

		kv := store.MemStore()
		So(Add(ctx, kv, auth, dir, soter.CapValidationHook, id1), ShouldBeNil)
		So(Add(ctx, kv, auth, dir, soter.CapValidationHook, id2), ShouldBeNil)

		digest := make([]byte, soter.DigestLength)
		tx := &soter.Tx{}

		Convey("Hooks run in order with their own data slot", func() {
			err := RunValidation(ctx, kv, dir, digest, tx, [][]byte{[]byte("a"), []byte("b")})
			So(err, ShouldBeNil)
			So(calls, ShouldResemble, []string{"validate(one)", "validate(two)"})
			So(one.HookData, ShouldResemble, []byte("a"))
			So(two.HookData, ShouldResemble, []byte("b"))
		})

		Convey("A slot count mismatch is rejected before any hook runs", func() {
			err := RunValidation(ctx, kv, dir, digest, tx, [][]byte{[]byte("a")})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			So(calls, ShouldBeEmpty)
		})

		Convey("The first veto stops the pipeline", func() {
			one.ValidateErr = errors.ErrUnauthorized.New("spend limit")

			err := RunValidation(ctx, kv, dir, digest, tx, [][]byte{nil, nil})
			So(errors.ErrHook.Is(err), ShouldBeTrue)
			So(calls, ShouldResemble, []string{"validate(one)"})
			So(two.ValidateCallCount(), ShouldEqual, 0)
		})

		Convey("An empty pipeline accepts with no slots", func() {
			empty := store.MemStore()
			err := RunValidation(ctx, empty, dir, digest, tx, nil)
			So(err, ShouldBeNil)
		})
	})
}

func TestRunExecution(t *testing.T) {
	Convey("Test execution pipeline run", t, func() {
		owner := sotertest.SequentialAddress(1)
		id1 := sotertest.SequentialAddress(2)
		id2 := sotertest.SequentialAddress(3)

		var calls []string
		one := sotertest.NewHook("one")
		one.Log = &calls
		two := sotertest.NewHook("two")
		two.Log = &calls

		dir := sotertest.NewDir().Register(id1, one).Register(id2, two)
		auth := &sotertest.Auth{Permitted: []soter.Address{owner}}
		ctx := soter.WithCaller(context.Background(), owner)

		kv := store.MemStore()
		So(Add(ctx, kv, auth, dir, soter.CapExecutionHook, id1), ShouldBeNil)
		So(Add(ctx, kv, auth, dir, soter.CapExecutionHook, id2), ShouldBeNil)

		tx := &soter.Tx{}
		inner := func(context.Context) error {
			calls = append(calls, "inner")
			return nil
		}

		Convey("Pre phases in order, post phases unwind in reverse", func() {
			err := RunExecution(ctx, kv, dir, tx, inner)
			So(err, ShouldBeNil)
			So(calls, ShouldResemble, []string{
				"pre(one)", "pre(two)", "inner", "post(two)", "post(one)",
			})
		})

		Convey("A pre phase failure stops before the inner call", func() {
			two.PreErr = errors.ErrUnauthorized.New("frozen")

			err := RunExecution(ctx, kv, dir, tx, inner)
			So(errors.ErrHook.Is(err), ShouldBeTrue)
			So(calls, ShouldResemble, []string{"pre(one)", "pre(two)"})
		})

		Convey("An inner failure skips the post phases", func() {
			err := RunExecution(ctx, kv, dir, tx, func(context.Context) error {
				calls = append(calls, "inner")
				return errors.ErrExecution.New("call reverted")
			})
			So(errors.ErrExecution.Is(err), ShouldBeTrue)
			So(calls, ShouldResemble, []string{"pre(one)", "pre(two)", "inner"})
		})

		Convey("A post phase failure surfaces even after a clean inner call", func() {
			one.PostErr = errors.ErrHook.New("settlement mismatch")

			err := RunExecution(ctx, kv, dir, tx, inner)
			So(errors.ErrHook.Is(err), ShouldBeTrue)
			So(calls, ShouldResemble, []string{
				"pre(one)", "pre(two)", "inner", "post(two)", "post(one)",
			})
		})

		Convey("No hooks means just the inner call", func() {
			empty := store.MemStore()
			err := RunExecution(ctx, empty, dir, tx, inner)
			So(err, ShouldBeNil)
			So(calls, ShouldResemble, []string{"inner"})
		})
	})
}
