package contextutil_test

import (
	"context"
	"testing"

	"go-ems/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadataRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithRole(ctx, "ADMIN")

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "ADMIN", md.Role)
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		def := zap.NewExample()
		assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
	})

	t.Run("prefers context logger", func(t *testing.T) {
		scoped := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, contextutil.GetLogger(ctx, zap.NewNop()))
	})
}

func TestDetachKeepsValues(t *testing.T) {
	ctx, cancel := context.WithCancel(contextutil.WithRequestID(context.Background(), "req-2"))
	cancel()

	detached := contextutil.Detach(ctx)
	assert.NoError(t, detached.Err())
	assert.Equal(t, "req-2", contextutil.GetRequestID(detached))
}
