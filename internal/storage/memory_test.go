package storage

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)

func orderAt(produto string, at time.Time) model.Order {
	return model.Order{
		Produto:    produto,
		Quantidade: 1,
		ValorTotal: 100,
		ValorSinal: 20,
		DataHora:   model.NewDateTime(at),
	}
}

func ids(list []model.Order) []int64 {
	out := make([]int64, 0, len(list))
	for _, o := range list {
		out = append(out, o.IDValue())
	}
	return out
}

func TestMemoryStorageListSplitsByCutoff(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	later, _, _ := s.CreateOrder(ctx, orderAt("later", now.Add(48*time.Hour)), "")
	old, _, _ := s.CreateOrder(ctx, orderAt("old", now.Add(-48*time.Hour)), "")
	soon, _, _ := s.CreateOrder(ctx, orderAt("soon", now.Add(time.Hour)), "")
	exact, _, _ := s.CreateOrder(ctx, orderAt("exact", now), "")
	recent, _, _ := s.CreateOrder(ctx, orderAt("recent", now.Add(-time.Minute)), "")

	current, err := s.ListOrders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{exact, soon, later}, ids(current))

	past, err := s.ListPastOrders(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{recent, old}, ids(past))
}

func TestMemoryStorageCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	id, replay, err := s.CreateOrder(ctx, orderAt("Bolo", now), "")
	require.NoError(t, err)
	assert.False(t, replay)

	got, err := s.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", got.Produto)
	assert.Equal(t, id, got.IDValue())

	update := orderAt("Torta", now)
	require.NoError(t, s.UpdateOrder(ctx, id, update))
	got, _ = s.GetOrder(ctx, id)
	assert.Equal(t, "Torta", got.Produto)

	require.NoError(t, s.DeleteOrder(ctx, id))
	_, err = s.GetOrder(ctx, id)
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)

	assert.ErrorIs(t, s.UpdateOrder(ctx, id, update), errs.ErrOrderNotFound)
	assert.ErrorIs(t, s.DeleteOrder(ctx, id), errs.ErrOrderNotFound)
}

func TestMemoryStorageIdempotentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	first, replay, err := s.CreateOrder(ctx, orderAt("Bolo", now), "key-1")
	require.NoError(t, err)
	require.False(t, replay)

	second, replay, err := s.CreateOrder(ctx, orderAt("Bolo", now), "key-1")
	require.NoError(t, err)
	assert.True(t, replay)
	assert.Equal(t, first, second)

	count, _ := s.CountOrders(ctx)
	assert.Equal(t, 1, count)
}
