package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/and161185/pedidos/internal/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallClockRoundTrip(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	at := time.Date(2024, 3, 1, 14, 30, 0, 0, loc)

	utc := wallClock(at)
	assert.Equal(t, time.UTC, utc.Location())
	assert.Equal(t, 14, utc.Hour())

	back := localWallClock(utc)
	assert.Equal(t, time.Local, back.Location())
	assert.Equal(t, 14, back.Hour())
	assert.Equal(t, 30, back.Minute())
}

// Runs against a real database when TEST_DATABASE_URI is set.
func TestPostgresStorage(t *testing.T) {
	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI not set")
	}

	ctx := context.Background()
	s, err := NewPostgresStorage(ctx, uri)
	require.NoError(t, err)
	defer s.Close()

	key := uuid.NewString()
	id, replay, err := s.CreateOrder(ctx, orderAt("Bolo", now.Add(time.Hour)), key)
	require.NoError(t, err)
	require.False(t, replay)
	t.Cleanup(func() { _ = s.DeleteOrder(ctx, id) })

	again, replay, err := s.CreateOrder(ctx, orderAt("Bolo", now.Add(time.Hour)), key)
	require.NoError(t, err)
	assert.True(t, replay)
	assert.Equal(t, id, again)

	got, err := s.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", got.Produto)
	assert.True(t, got.DataHora.Equal(now.Add(time.Hour)))

	current, err := s.ListOrders(ctx, now)
	require.NoError(t, err)
	assert.Contains(t, ids(current), id)

	past, err := s.ListPastOrders(ctx, now)
	require.NoError(t, err)
	assert.NotContains(t, ids(past), id)

	require.NoError(t, s.UpdateOrder(ctx, id, orderAt("Torta", now.Add(-time.Hour))))
	past, err = s.ListPastOrders(ctx, now)
	require.NoError(t, err)
	assert.Contains(t, ids(past), id)

	require.NoError(t, s.DeleteOrder(ctx, id))
	_, err = s.GetOrder(ctx, id)
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}
