package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oragh/platform-client/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemoryTokenStore, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	tokens := NewMemoryTokenStore()
	client := NewClient(config.Config{APIBaseURL: srv.URL, Timeout: 5 * time.Second}, tokens)
	return client, tokens, srv.Close
}

func TestAttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, tokens, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer done()

	if err := tokens.SetTokens("abc", "def"); err != nil {
		t.Fatalf("set tokens: %v", err)
	}
	if err := client.Get(context.Background(), "/seasons/", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected X-Request-ID to be set")
	}
}

func TestRefreshesOnceOn401(t *testing.T) {
	var seasonCalls int
	var tokensSeen []string
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/", func(w http.ResponseWriter, r *http.Request) {
		seasonCalls++
		tokensSeen = append(tokensSeen, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"count":0,"results":[]}`))
	})
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode refresh body: %v", err)
		}
		if body["refresh"] != "refresh-token" {
			t.Errorf("expected refresh token in body, got %q", body["refresh"])
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
	})

	client, tokens, done := newTestClient(t, mux)
	defer done()
	tokens.SetTokens("stale", "refresh-token")

	if err := client.Get(context.Background(), "/seasons/", nil, nil); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}
	if seasonCalls != 2 {
		t.Fatalf("expected original request plus one retry, got %d calls", seasonCalls)
	}
	if tokens.AccessToken() != "fresh" {
		t.Fatalf("expected refreshed token persisted, got %q", tokens.AccessToken())
	}
}

func TestSecond401ClearsTokensWithoutFurtherRetry(t *testing.T) {
	var seasonCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/", func(w http.ResponseWriter, r *http.Request) {
		seasonCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
	})

	client, tokens, done := newTestClient(t, mux)
	defer done()
	tokens.SetTokens("stale", "refresh-token")

	var expired bool
	client.OnSessionExpired(func() { expired = true })

	err := client.Get(context.Background(), "/seasons/", nil, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindAuthExpired {
		t.Fatalf("expected auth expired error, got %v", err)
	}
	if seasonCalls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", seasonCalls)
	}
	if !expired {
		t.Fatalf("expected session expired callback")
	}
	if tokens.AccessToken() != "" || tokens.RefreshToken() != "" {
		t.Fatalf("expected tokens cleared")
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"count":0,"results":[]}`))
	})
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
	})

	client, tokens, done := newTestClient(t, mux)
	defer done()
	tokens.SetTokens("stale", "refresh-token")

	const callers = 4
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			errs <- client.Get(context.Background(), "/seasons/", nil, nil)
		}()
	}
	for i := 0; i < callers; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Fatalf("callers blocked on a refresh must reuse its token, got %d refreshes", got)
	}
}

func TestFailedRefreshClearsTokens(t *testing.T) {
	var seasonCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/seasons/", func(w http.ResponseWriter, r *http.Request) {
		seasonCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, tokens, done := newTestClient(t, mux)
	defer done()
	tokens.SetTokens("stale", "refresh-token")

	err := client.Get(context.Background(), "/seasons/", nil, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindAuthExpired {
		t.Fatalf("expected auth expired error, got %v", err)
	}
	if seasonCalls != 1 {
		t.Fatalf("expected no retry after failed refresh, got %d calls", seasonCalls)
	}
	if tokens.AccessToken() != "" {
		t.Fatalf("expected tokens cleared")
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   ErrorKind
	}{
		{"forbidden", http.StatusForbidden, `{"detail":"forbidden"}`, KindForbidden},
		{"not found", http.StatusNotFound, `{"detail":"not found"}`, KindNotFound},
		{"validation", http.StatusBadRequest, `{"name":["This field is required."]}`, KindValidation},
		{"server", http.StatusInternalServerError, `{}`, KindServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer done()

			err := client.Get(context.Background(), "/x/", nil, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *api.Error, got %v", err)
			}
			if apiErr.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, apiErr.Kind)
			}
		})
	}
}

func TestValidationFieldsParsed(t *testing.T) {
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"name":["already exists"],"detail":"invalid"}`))
	}))
	defer done()

	err := client.Post(context.Background(), "/seasons/", map[string]string{"name": "x"}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Field("name") != "already exists" {
		t.Fatalf("expected field message, got %q", apiErr.Field("name"))
	}
	if apiErr.Detail != "invalid" {
		t.Fatalf("expected detail kept, got %q", apiErr.Detail)
	}
}
