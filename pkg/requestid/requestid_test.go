package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIDRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
}

func TestNew_IsUUID(t *testing.T) {
	id := New()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, New())
}
