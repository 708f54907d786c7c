package soter_test

import (
	"context"
	"testing"

	"github.com/soter-one/soter"
	"github.com/soter-one/soter/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerContext(t *testing.T) {
	bg := context.Background()
	assert.Nil(t, soter.GetCaller(bg))

	addr := soter.NewAddress([]byte("caller"))
	ctx := soter.WithCaller(bg, addr)
	assert.True(t, soter.GetCaller(ctx).Equals(addr))

	// rebinding replaces, nested frames never inherit parent rights
	other := soter.NewAddress([]byte("other"))
	ctx = soter.WithCaller(ctx, other)
	assert.True(t, soter.GetCaller(ctx).Equals(other))
}

func TestNestedCallDepth(t *testing.T) {
	ctx := soter.WithCaller(context.Background(), soter.NewAddress([]byte("root")))
	assert.Equal(t, 0, soter.GetCallDepth(ctx))

	for i := 1; i <= soter.MaxCallDepth; i++ {
		var err error
		ctx, err = soter.WithNestedCall(ctx, soter.NewAddress([]byte{byte(i)}))
		require.NoError(t, err)
		assert.Equal(t, i, soter.GetCallDepth(ctx))
	}

	_, err := soter.WithNestedCall(ctx, soter.NewAddress([]byte("too deep")))
	assert.True(t, errors.ErrLimit.Is(err))
}

func TestLoggerContext(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, soter.DefaultLogger, soter.GetLogger(bg))

	logger := soter.DefaultLogger.With("module", "test")
	ctx := soter.WithLogger(bg, logger)
	assert.NotNil(t, soter.GetLogger(ctx))
}
