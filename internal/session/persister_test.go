package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()

	_, err := p.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	payload := []byte(`{"id":"user-1"}`)
	require.NoError(t, p.Save(ctx, payload))

	// Mutating the caller's buffer must not leak into the stored copy
	payload[0] = 'x'

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"user-1"}`, string(got))

	require.NoError(t, p.Clear(ctx))
	_, err = p.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}
