package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS pedidos (
		id BIGSERIAL PRIMARY KEY,
		produto TEXT NOT NULL,
		quantidade DOUBLE PRECISION NOT NULL DEFAULT 0,
		valor_total DOUBLE PRECISION NOT NULL DEFAULT 0,
		descricao TEXT NOT NULL DEFAULT '',
		nome_cliente TEXT NOT NULL DEFAULT '',
		contato TEXT NOT NULL DEFAULT '',
		valor_sinal DOUBLE PRECISION NOT NULL DEFAULT 0,
		data_hora TIMESTAMP NOT NULL,
		idempotency_key TEXT UNIQUE,
		created_at TIMESTAMP DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS pedidos_data_hora_idx ON pedidos (data_hora);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgresStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

const selectColumns = `id, produto, quantidade, valor_total, descricao, nome_cliente, contato, valor_sinal, data_hora`

func (s *PostgresStorage) ListOrders(ctx context.Context, from time.Time) ([]model.Order, error) {
	const query = `SELECT ` + selectColumns + `
		FROM pedidos
		WHERE data_hora >= $1
		ORDER BY data_hora ASC, id ASC`

	return s.queryOrders(ctx, query, wallClock(from))
}

func (s *PostgresStorage) ListPastOrders(ctx context.Context, before time.Time) ([]model.Order, error) {
	const query = `SELECT ` + selectColumns + `
		FROM pedidos
		WHERE data_hora < $1
		ORDER BY data_hora DESC, id DESC`

	return s.queryOrders(ctx, query, wallClock(before))
}

func (s *PostgresStorage) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return orders, nil
}

func (s *PostgresStorage) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	const query = `SELECT ` + selectColumns + ` FROM pedidos WHERE id = $1`

	o, err := scanOrder(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, errs.ErrOrderNotFound
		}
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	return o, nil
}

func (s *PostgresStorage) CreateOrder(ctx context.Context, order model.Order, idempotencyKey string) (int64, bool, error) {
	const insertQuery = `
		INSERT INTO pedidos (produto, quantidade, valor_total, descricao, nome_cliente, contato, valor_sinal, data_hora, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		RETURNING id`

	const replayQuery = `SELECT id FROM pedidos WHERE idempotency_key = $1`

	var id int64
	err := s.db.QueryRow(ctx, insertQuery,
		order.Produto,
		order.Quantidade,
		order.ValorTotal,
		order.Descricao,
		order.NomeCliente,
		order.Contato,
		order.ValorSinal,
		wallClock(order.DataHora.Time),
		idempotencyKey,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && idempotencyKey != "" {
			// 23505: the key was already used, hand back the first order
			if err := s.db.QueryRow(ctx, replayQuery, idempotencyKey).Scan(&id); err != nil {
				return 0, false, fmt.Errorf("select replayed order: %w", err)
			}
			return id, true, nil
		}
		return 0, false, fmt.Errorf("insert order: %w", err)
	}

	return id, false, nil
}

func (s *PostgresStorage) UpdateOrder(ctx context.Context, id int64, order model.Order) error {
	const query = `
		UPDATE pedidos
		SET produto = $1, quantidade = $2, valor_total = $3, descricao = $4,
			nome_cliente = $5, contato = $6, valor_sinal = $7, data_hora = $8
		WHERE id = $9`

	cmdTag, err := s.db.Exec(ctx, query,
		order.Produto,
		order.Quantidade,
		order.ValorTotal,
		order.Descricao,
		order.NomeCliente,
		order.Contato,
		order.ValorSinal,
		wallClock(order.DataHora.Time),
		id,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}

func (s *PostgresStorage) DeleteOrder(ctx context.Context, id int64) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}

func (s *PostgresStorage) CountOrders(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM pedidos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	var id int64
	var dataHora time.Time

	err := row.Scan(&id, &o.Produto, &o.Quantidade, &o.ValorTotal, &o.Descricao, &o.NomeCliente, &o.Contato, &o.ValorSinal, &dataHora)
	if err != nil {
		return model.Order{}, err
	}

	o.DataHora = model.NewDateTime(localWallClock(dataHora))
	return o.WithID(id), nil
}

// data_hora is a zoneless TIMESTAMP. Values travel as wall clock in UTC and
// come back as the same wall clock in the local zone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func localWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}
