package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	resourcePath      = "/pedidos"
	pastPath          = "/passado"
	RequestIDHeader   = "X-Request-ID"
	IdempotencyHeader = "Idempotency-Key"
)

// Client talks to the pedidos HTTP API.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *zap.SugaredLogger
}

func New(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, resourcePath)

	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL + resourcePath,
		logger:  logger,
	}
}

func (c *Client) List(ctx context.Context) ([]model.Order, error) {
	return c.list(ctx, c.baseURL)
}

func (c *Client) ListPast(ctx context.Context) ([]model.Order, error) {
	return c.list(ctx, c.baseURL+pastPath)
}

func (c *Client) list(ctx context.Context, url string) ([]model.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return []model.Order{}, nil
	case http.StatusOK:
		orders := []model.Order{}
		if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
			return nil, fmt.Errorf("decode orders: %w", err)
		}
		return orders, nil
	default:
		return nil, fmt.Errorf("list orders: %w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}
}

func (c *Client) Get(ctx context.Context, id int64) (model.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, nil)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return model.Order{}, fmt.Errorf("get order %d: %w (status %d)", id, errs.ErrOrderNotFound, resp.StatusCode)
	}

	var order model.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return model.Order{}, fmt.Errorf("decode order %d: %w", id, err)
	}
	return order, nil
}

func (c *Client) Create(ctx context.Context, order model.Order) error {
	order.ID = nil
	headers := map[string]string{IdempotencyHeader: uuid.NewString()}
	return c.save(ctx, http.MethodPost, c.baseURL, order, headers)
}

func (c *Client) Update(ctx context.Context, id int64, order model.Order) error {
	order = order.WithID(id)
	return c.save(ctx, http.MethodPut, c.itemURL(id), order, nil)
}

func (c *Client) save(ctx context.Context, method, url string, order model.Order, headers map[string]string) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	resp, err := c.do(ctx, method, url, bytes.NewReader(body), headers)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	defer drain(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("save order: %w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	defer drain(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("delete order %d: %w: %d", id, errs.ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debugw("request failed", "method", method, "url", url, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("send request: %w", err)
	}

	c.logger.Debugw("request done",
		"method", method,
		"url", url,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	body.Close()
}
