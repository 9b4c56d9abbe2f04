package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/pedidos/internal/config"
	"github.com/and161185/pedidos/internal/deps"
	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/middleware"
	"github.com/and161185/pedidos/internal/model"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=../mocks/mock_storage.go -package=mocks github.com/and161185/pedidos/internal/server Storage

type Storage interface {
	ListOrders(ctx context.Context, from time.Time) ([]model.Order, error)
	ListPastOrders(ctx context.Context, before time.Time) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	CreateOrder(ctx context.Context, order model.Order, idempotencyKey string) (int64, bool, error)
	UpdateOrder(ctx context.Context, id int64, order model.Order) error
	DeleteOrder(ctx context.Context, id int64) error
	CountOrders(ctx context.Context) (int, error)
}

type Server struct {
	storage Storage
	config  *config.Config
	deps    *deps.Deps
}

func NewServer(storage Storage, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		storage: storage,
		config:  config,
		deps:    deps,
	}
}

func (srv *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(middleware.MetricsMiddleware(srv.deps.Metrics))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.deps.Logger))

	router.Handle("/metrics", srv.deps.Metrics.Handler())

	router.Route("/pedidos", func(r chi.Router) {
		r.Get("/", srv.ListOrdersHandler)
		r.Post("/", srv.CreateOrderHandler)
		r.Get("/passado", srv.ListPastOrdersHandler)
		r.Get("/{id}", srv.GetOrderHandler)
		r.Put("/{id}", srv.UpdateOrderHandler)
		r.Delete("/{id}", srv.DeleteOrderHandler)
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              srv.config.RunAddress,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv.refreshOrderGauge(ctx)

	errCh := make(chan error, 1)
	go func() {
		srv.deps.Logger.Infof("listening on %s", srv.config.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (srv *Server) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := srv.storage.ListOrders(r.Context(), srv.deps.Clock.Now())
	srv.writeOrders(w, orders, err)
}

func (srv *Server) ListPastOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := srv.storage.ListPastOrders(r.Context(), srv.deps.Clock.Now())
	srv.writeOrders(w, orders, err)
}

func (srv *Server) writeOrders(w http.ResponseWriter, orders []model.Order, err error) {
	if err != nil {
		srv.deps.Logger.Errorw("list orders", "error", err)
		http.Error(w, "failed to get orders", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (srv *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := srv.storage.GetOrder(r.Context(), id)
	if err != nil {
		srv.storageError(w, "get order", id, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (srv *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, ok := decodeOrder(w, r)
	if !ok {
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	id, replay, err := srv.storage.CreateOrder(r.Context(), order, key)
	if err != nil {
		srv.deps.Logger.Errorw("create order", "error", err)
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/pedidos/"+strconv.FormatInt(id, 10))

	if replay {
		first, err := srv.storage.GetOrder(r.Context(), id)
		if err != nil {
			srv.storageError(w, "replay order", id, err)
			return
		}
		writeJSON(w, http.StatusOK, first)
		return
	}

	srv.refreshOrderGauge(r.Context())
	writeJSON(w, http.StatusCreated, order.WithID(id))
}

func (srv *Server) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, ok := decodeOrder(w, r)
	if !ok {
		return
	}

	if err := srv.storage.UpdateOrder(r.Context(), id, order); err != nil {
		srv.storageError(w, "update order", id, err)
		return
	}

	writeJSON(w, http.StatusOK, order.WithID(id))
}

func (srv *Server) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := srv.storage.DeleteOrder(r.Context(), id); err != nil {
		srv.storageError(w, "delete order", id, err)
		return
	}

	srv.refreshOrderGauge(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) storageError(w http.ResponseWriter, op string, id int64, err error) {
	if errors.Is(err, errs.ErrOrderNotFound) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	srv.deps.Logger.Errorw(op, "id", id, "error", err)
	http.Error(w, "db error", http.StatusInternalServerError)
}

func (srv *Server) refreshOrderGauge(ctx context.Context) {
	count, err := srv.storage.CountOrders(ctx)
	if err != nil {
		srv.deps.Logger.Warnw("count orders", "error", err)
		return
	}
	srv.deps.Metrics.Orders.Set(float64(count))
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeOrder(w http.ResponseWriter, r *http.Request) (model.Order, bool) {
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return model.Order{}, false
	}
	if strings.TrimSpace(order.Produto) == "" || order.DataHora.IsZero() {
		http.Error(w, "produto and dataHora required", http.StatusUnprocessableEntity)
		return model.Order{}, false
	}
	order.ID = nil
	return order, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
