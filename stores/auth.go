package stores

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/services"
	"github.com/oragh/platform-client/utils"
)

// AuthStore tracks the signed-in user. It starts loading with no user;
// CheckAuth restores a session from a persisted token, and Login/Logout are
// the only other transitions.
type AuthStore struct {
	service     *services.AuthService
	permissions *services.PermissionsService

	mu         sync.Mutex
	user       *models.User
	activation *models.ActivationInfo
	loading    bool
	hasChecked bool
	err        string

	activationGen uint64
}

// NewAuthStore wires the auth service and the permissions cache; the cache
// is invalidated on every login/logout so a new session never sees the
// previous user's permission set.
func NewAuthStore(service *services.AuthService, permissions *services.PermissionsService) *AuthStore {
	return &AuthStore{service: service, permissions: permissions, loading: true}
}

// ==================== State accessors ====================

func (s *AuthStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) HasCheckedAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasChecked
}

func (s *AuthStore) ActivationInfo() *models.ActivationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activation == nil {
		return nil
	}
	info := *s.activation
	return &info
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// ==================== Actions ====================

// CheckAuth restores a session from persisted tokens. The stored access
// token is verified against the backend; a minimal user is decoded from the
// token payload rather than fetched, so startup costs one verify call.
func (s *AuthStore) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var user *models.User
	if s.service.IsAuthenticated() {
		token := s.service.Tokens().AccessToken()
		if s.service.VerifyToken(ctx, token) {
			user = userFromToken(token)
		} else {
			if err := s.service.ClearTokens(); err != nil {
				utils.Warn("failed to clear invalid tokens: %v", err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loading = false
	s.hasChecked = true
}

func (s *AuthStore) Login(ctx context.Context, creds models.LoginRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	tokens, err := s.service.Login(ctx, creds)
	var user models.User
	if err == nil {
		if storeErr := s.service.StoreTokens(tokens); storeErr != nil {
			utils.Warn("failed to persist tokens: %v", storeErr)
		}
		user, err = s.service.CurrentUser(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.hasChecked = true
	if err != nil {
		s.user = nil
		s.err = errorMessage(err, "Błąd logowania")
		return false
	}
	s.user = &user
	s.permissions.Invalidate()
	return true
}

func (s *AuthStore) Register(ctx context.Context, data models.RegisterRequest) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	tokens, err := s.service.Register(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.hasChecked = true
	if err != nil {
		s.err = errorMessage(err, "Błąd rejestracji")
		return false
	}
	if storeErr := s.service.StoreTokens(tokens); storeErr != nil {
		utils.Warn("failed to persist tokens: %v", storeErr)
	}
	if tokens.User != nil {
		s.user = tokens.User
	} else {
		s.user = userFromToken(tokens.Access)
	}
	s.permissions.Invalidate()
	return true
}

// FetchActivationInfo loads the confirmation data behind an activation
// token. Invalid tokens surface the backend's message.
func (s *AuthStore) FetchActivationInfo(ctx context.Context, token string) {
	s.mu.Lock()
	s.activationGen++
	gen := s.activationGen
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	info, err := s.service.ActivationInfo(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.activationGen {
		return
	}
	s.loading = false
	if err != nil {
		s.activation = nil
		s.err = errorMessage(err, "Nie udało się pobrać informacji o aktywacji")
		return
	}
	s.activation = &info
}

// ActivateAccount redeems the activation token loaded for confirmation.
func (s *AuthStore) ActivateAccount(ctx context.Context, token string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.service.ActivateAccount(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = errorMessage(err, "Wystąpił błąd podczas aktywacji")
		return false
	}
	if !result.Success {
		s.err = "Nie udało się aktywować konta"
		return false
	}
	s.activation = nil
	return true
}

func (s *AuthStore) Logout() {
	if err := s.service.ClearTokens(); err != nil {
		utils.Warn("failed to clear tokens: %v", err)
	}
	s.permissions.Invalidate()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.err = ""
}

// userFromToken decodes the minimal user shape carried in the access token
// payload. The signature is deliberately not checked here; the backend
// already verified the token, this only reads the claims.
func userFromToken(token string) *models.User {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		utils.Debug("failed to decode token claims: %v", err)
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	user := &models.User{}
	if id, ok := claims["user_id"].(float64); ok {
		user.ID = int(id)
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if user.ID == 0 {
		return nil
	}
	return user
}
