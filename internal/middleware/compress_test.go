package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestDecompressMiddleware(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("test body"))
	_ = gz.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	var body string
	handler := DecompressMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatal(err)
		}
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if body != "test body" {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCompressMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	handler := CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"produto":"Bolo"}]`))
	}))

	handler.ServeHTTP(rr, req)

	resp := rr.Result()
	defer resp.Body.Close()

	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got: %s", resp.Header.Get("Content-Encoding"))
	}

	gr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader error: %v", err)
	}
	defer gr.Close()

	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if string(data) != `[{"id":1,"produto":"Bolo"}]` {
		t.Fatalf("unexpected body: %s", data)
	}
}

func TestCompressMiddlewareSkipsWithoutAcceptEncoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
	rr := httptest.NewRecorder()

	handler := CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))

	handler.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "" {
		t.Fatalf("unexpected encoding: %s", rr.Header().Get("Content-Encoding"))
	}
	if rr.Body.String() != "plain" {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestCompressMiddlewareNoContent(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/pedidos/1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	handler := CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if rr.Header().Get("Content-Encoding") != "" {
		t.Fatalf("204 must not be gzip encoded")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("unexpected body: %q", rr.Body.Bytes())
	}
}
