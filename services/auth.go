package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oragh/platform-client/api"
	"github.com/oragh/platform-client/models"
	"github.com/oragh/platform-client/utils"
)

// AuthService wraps the token and registration endpoints.
type AuthService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, creds models.LoginRequest) (models.TokenPair, error) {
	if err := checkRequest(creds); err != nil {
		return models.TokenPair{}, err
	}
	var tokens models.TokenPair
	err := s.client.Post(ctx, "/auth/token/", creds, &tokens)
	utils.LogAuthAction("login", creds.Username, err == nil)
	return tokens, err
}

func (s *AuthService) Register(ctx context.Context, data models.RegisterRequest) (models.TokenPair, error) {
	if err := checkRequest(data); err != nil {
		return models.TokenPair{}, err
	}
	var tokens models.TokenPair
	err := s.client.Post(ctx, "/users/register/", data, &tokens)
	utils.LogAuthAction("register", data.Username, err == nil)
	return tokens, err
}

// ActivationInfo fetches the account summary behind an activation token, the
// confirmation step before the board member activates the account.
func (s *AuthService) ActivationInfo(ctx context.Context, token string) (models.ActivationInfo, error) {
	var info models.ActivationInfo
	err := s.client.Get(ctx, fmt.Sprintf("/users/activate/%s/", url.PathEscape(token)), nil, &info)
	return info, err
}

// ActivateAccount redeems an activation token. Used or expired tokens fail
// with the backend's error message.
func (s *AuthService) ActivateAccount(ctx context.Context, token string) (models.ActivationResult, error) {
	var result models.ActivationResult
	err := s.client.Post(ctx, fmt.Sprintf("/users/activate/%s/", url.PathEscape(token)), nil, &result)
	return result, err
}

// VerifyToken asks the backend whether an access token is still valid.
func (s *AuthService) VerifyToken(ctx context.Context, token string) bool {
	err := s.client.Post(ctx, "/auth/token/verify/", map[string]string{"token": token}, nil)
	return err == nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refresh string) (models.TokenPair, error) {
	var tokens models.TokenPair
	err := s.client.Post(ctx, "/auth/token/refresh/", map[string]string{"refresh": refresh}, &tokens)
	return tokens, err
}

func (s *AuthService) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := s.client.Get(ctx, "/users/current/", nil, &user)
	return user, err
}

// StoreTokens persists a freshly issued token pair.
func (s *AuthService) StoreTokens(tokens models.TokenPair) error {
	return s.client.Tokens().SetTokens(tokens.Access, tokens.Refresh)
}

// Tokens exposes the client's token store.
func (s *AuthService) Tokens() api.TokenStore {
	return s.client.Tokens()
}

func (s *AuthService) ClearTokens() error {
	return s.client.Tokens().ClearTokens()
}

func (s *AuthService) IsAuthenticated() bool {
	return s.client.Tokens().AccessToken() != ""
}
