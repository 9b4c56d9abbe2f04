package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
)

type MemoryStorage struct {
	mu          sync.RWMutex
	orders      map[int64]model.Order
	idempotency map[string]int64
	nextID      int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		orders:      make(map[int64]model.Order),
		idempotency: make(map[string]int64),
		nextID:      1,
	}
}

// ListOrders returns orders due at or after from, earliest first.
func (s *MemoryStorage) ListOrders(_ context.Context, from time.Time) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []model.Order
	for _, o := range s.orders {
		if !o.DataHora.Before(from) {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list, nil
}

// ListPastOrders returns orders due before the cutoff, latest first.
func (s *MemoryStorage) ListPastOrders(_ context.Context, before time.Time) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []model.Order
	for _, o := range s.orders {
		if o.DataHora.Before(before) {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return less(list[j], list[i]) })
	return list, nil
}

func (s *MemoryStorage) GetOrder(_ context.Context, id int64) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, errs.ErrOrderNotFound
	}
	return o, nil
}

// CreateOrder stores a new order. A repeated idempotency key returns the id
// of the first order and replay=true.
func (s *MemoryStorage) CreateOrder(_ context.Context, order model.Order, idempotencyKey string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idempotencyKey != "" {
		if id, ok := s.idempotency[idempotencyKey]; ok {
			return id, true, nil
		}
	}

	id := s.nextID
	s.nextID++
	s.orders[id] = order.WithID(id)
	if idempotencyKey != "" {
		s.idempotency[idempotencyKey] = id
	}
	return id, false, nil
}

func (s *MemoryStorage) UpdateOrder(_ context.Context, id int64, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return errs.ErrOrderNotFound
	}
	s.orders[id] = order.WithID(id)
	return nil
}

func (s *MemoryStorage) DeleteOrder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return errs.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *MemoryStorage) CountOrders(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders), nil
}

func less(a, b model.Order) bool {
	if a.DataHora.Equal(b.DataHora.Time) {
		return a.IDValue() < b.IDValue()
	}
	return a.DataHora.Before(b.DataHora.Time)
}
