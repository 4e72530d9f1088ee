package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteCoverage(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    bool
	}{
		{"register", http.MethodPost, "/api/v1/auth/register", true},
		{"cart mutation", http.MethodPut, "/api/v1/store/carts/current", true},
		{"cart read", http.MethodGet, "/api/v1/store/carts/current", false},
		{"login", http.MethodPost, "/api/v1/auth/login", false},
	}

	for _, tt := range tests {
		if got := routeCovered(tt.method, tt.pattern); got != tt.want {
			t.Fatalf("%s: expected covered=%v got %v", tt.name, tt.want, got)
		}
	}
}

func TestIdempotencyMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":3}`))
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", resp.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler executed %d times, expected 2", calls)
	}
	if len(store.data) != 0 {
		t.Fatalf("no records expected without a key, got %d", len(store.data))
	}
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":3}`))
	req.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected first response 202 got %d", resp.Code)
	}

	replay := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":3}`))
	replay.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, replay)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected replay status 202 got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected content-type header preserved")
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("expected stored body got %s", rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler executed %d times, expected 1", calls)
	}
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":3}`))
	req.Header.Set("Idempotency-Key", "xyz")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	replay := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":9}`))
	replay.Header.Set("Idempotency-Key", "xyz")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, replay)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("expected error code %s got %s", pkgerrors.CodeIdempotency, payload.Error.Code)
	}
}

func TestIdempotencyScopesKeysPerUser(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, time.Hour, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for _, user := range []string{"user-a", "user-b"} {
		req := requestWithPattern(http.MethodPut, "/api/v1/store/carts/current", "/api/v1/store/carts/current", strings.NewReader(`{"product_id":1,"quantity":3}`))
		req.Header.Set("Idempotency-Key", "shared")
		req = req.WithContext(WithUserID(req.Context(), user))
		mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("distinct users must not share records, handler ran %d times", calls)
	}
}
