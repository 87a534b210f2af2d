package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/config"
	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
)

func newAuthStore(t *testing.T, handler http.Handler) (*AuthStore, api.TokenStore, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	tokens := api.NewMemoryTokenStore()
	client := api.NewClient(config.Config{APIBaseURL: srv.URL, Timeout: 5 * time.Second}, tokens)
	store := NewAuthStore(services.NewAuthService(client), services.NewPermissionsService(client))
	return store, tokens, srv.Close
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginSetsUserAndPersistsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds.Username != "ania" || creds.Password != "sekret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(models.TokenPair{Access: "access-1", Refresh: "refresh-1"})
	})
	mux.HandleFunc("GET /users/current/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: 5, Username: "ania", Email: "ania@oragh.pl"})
	})

	store, tokens, done := newAuthStore(t, mux)
	defer done()

	ok := store.Login(context.Background(), models.LoginRequest{Username: "ania", Password: "sekret"})
	if !ok {
		t.Fatalf("login failed: %s", store.Err())
	}
	user := store.User()
	if user == nil || user.ID != 5 || user.Username != "ania" {
		t.Fatalf("expected current user cached, got %v", user)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated after login")
	}
	if tokens.AccessToken() != "access-1" || tokens.RefreshToken() != "refresh-1" {
		t.Fatalf("expected token pair persisted")
	}
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	})

	store, tokens, done := newAuthStore(t, mux)
	defer done()

	if store.Login(context.Background(), models.LoginRequest{Username: "ania", Password: "zle"}) {
		t.Fatalf("expected login to fail")
	}
	if store.IsAuthenticated() {
		t.Fatalf("failed login must not authenticate")
	}
	if tokens.AccessToken() != "" {
		t.Fatalf("failed login must not persist tokens")
	}
	if store.Err() == "" {
		t.Fatalf("expected error message set")
	}
}

func TestCheckAuthRestoresUserFromToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/verify/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	store, tokens, done := newAuthStore(t, mux)
	defer done()

	access := signedToken(t, jwt.MapClaims{
		"user_id":  float64(5),
		"username": "ania",
		"email":    "ania@oragh.pl",
	})
	tokens.SetTokens(access, "refresh-1")

	store.CheckAuth(context.Background())
	if !store.HasCheckedAuth() {
		t.Fatalf("expected check flagged done")
	}
	user := store.User()
	if user == nil {
		t.Fatalf("expected session restored")
	}
	if user.ID != 5 || user.Username != "ania" || user.Email != "ania@oragh.pl" {
		t.Fatalf("expected user decoded from token claims, got %+v", user)
	}
}

func TestCheckAuthRejectsInvalidToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/verify/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
	})
	mux.HandleFunc("POST /auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
	})

	store, tokens, done := newAuthStore(t, mux)
	defer done()

	tokens.SetTokens("stale-access", "stale-refresh")
	store.CheckAuth(context.Background())

	if store.IsAuthenticated() {
		t.Fatalf("invalid token must not restore a session")
	}
	if tokens.AccessToken() != "" {
		t.Fatalf("expected stale tokens cleared")
	}
}

func TestCheckAuthWithoutTokensSkipsBackend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	store, _, done := newAuthStore(t, mux)
	defer done()

	store.CheckAuth(context.Background())
	if store.IsAuthenticated() {
		t.Fatalf("no tokens, no session")
	}
	if !store.HasCheckedAuth() {
		t.Fatalf("expected check flagged done")
	}
	if store.IsLoading() {
		t.Fatalf("expected loading cleared after check")
	}
}

func TestActivateAccountHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/activate/tok-123/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ActivationInfo{
			Success: true,
			Action:  "confirm",
			User:    models.ActivationUser{Username: "ania", FirstName: "Ania", LastName: "Nowak"},
			Message: "Czy chcesz aktywować konto użytkownika Ania Nowak?",
		})
	})
	mux.HandleFunc("POST /users/activate/tok-123/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ActivationResult{
			Success: true,
			Message: "Konto użytkownika Ania Nowak zostało aktywowane.",
		})
	})

	store, _, done := newAuthStore(t, mux)
	defer done()
	ctx := context.Background()

	store.FetchActivationInfo(ctx, "tok-123")
	info := store.ActivationInfo()
	if info == nil || info.User.Username != "ania" {
		t.Fatalf("expected activation info cached, got %+v", info)
	}

	if !store.ActivateAccount(ctx, "tok-123") {
		t.Fatalf("activation failed: %s", store.Err())
	}
	if store.ActivationInfo() != nil {
		t.Fatalf("expected activation slot cleared after success")
	}
}

func TestActivateAccountUsedTokenSurfacesBackendError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/activate/tok-123/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"To konto zostało już aktywowane."}`))
	})

	store, _, done := newAuthStore(t, mux)
	defer done()

	if store.ActivateAccount(context.Background(), "tok-123") {
		t.Fatalf("expected used token rejected")
	}
	if store.Err() != "To konto zostało już aktywowane." {
		t.Fatalf("expected backend error surfaced, got %q", store.Err())
	}
}

func TestFetchActivationInfoUnknownToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/activate/zly/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Nieprawidłowy token aktywacyjny."}`))
	})

	store, _, done := newAuthStore(t, mux)
	defer done()

	store.FetchActivationInfo(context.Background(), "zly")
	if store.ActivationInfo() != nil {
		t.Fatalf("unknown token must not cache info")
	}
	if store.Err() != "Nieprawidłowy token aktywacyjny." {
		t.Fatalf("expected backend error surfaced, got %q", store.Err())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TokenPair{Access: "access-1", Refresh: "refresh-1"})
	})
	mux.HandleFunc("GET /users/current/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: 5, Username: "ania"})
	})

	store, tokens, done := newAuthStore(t, mux)
	defer done()

	if !store.Login(context.Background(), models.LoginRequest{Username: "ania", Password: "sekret"}) {
		t.Fatalf("login failed: %s", store.Err())
	}
	store.Logout()

	if store.IsAuthenticated() {
		t.Fatalf("expected session cleared")
	}
	if tokens.AccessToken() != "" || tokens.RefreshToken() != "" {
		t.Fatalf("expected tokens cleared")
	}
}
