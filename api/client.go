package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oragh/platform-client/config"
	"github.com/oragh/platform-client/utils"
)

// Client is the HTTP adapter every service goes through. It attaches the
// bearer token from the token store, tags each request with an X-Request-ID
// and, on a 401, performs exactly one token refresh before giving up. A
// failed refresh clears the persisted tokens and fires the session-expired
// callback; there is no further automatic retry.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	// refreshMu serializes concurrent refresh attempts so only one refresh
	// request hits the backend at a time.
	refreshMu sync.Mutex

	onSessionExpired func()
}

func NewClient(cfg config.Config, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
	}
}

// OnSessionExpired registers the hook invoked when a refresh fails, the
// client-side stand-in for the login redirect.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Tokens exposes the underlying token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PostMultipart uploads one file as a multipart/form-data request. The body
// is buffered up front so the 401 retry can resend it.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindTransport, Detail: fmt.Sprintf("encode upload: %v", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindTransport, Detail: fmt.Sprintf("read upload: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return &Error{Kind: KindTransport, Detail: fmt.Sprintf("encode upload: %v", err)}
	}
	return c.doRaw(ctx, http.MethodPost, path, nil, buf.Bytes(), writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Detail: fmt.Sprintf("encode request: %v", err)}
		}
	}
	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, query, payload, contentType, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, payload []byte, contentType string, out any) error {
	token := c.tokens.AccessToken()
	resp, respBody, err := c.roundTrip(ctx, method, path, query, payload, contentType, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		newAccess, refreshErr := c.refreshOnce(ctx, token)
		if refreshErr != nil {
			return refreshErr
		}
		resp, respBody, err = c.roundTrip(ctx, method, path, query, payload, contentType, newAccess)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// Second 401 on the retried request: the session is gone.
			return c.expireSession()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindTransport, Detail: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, contentType, token string) (*http.Response, []byte, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, &Error{Kind: KindTransport, Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &Error{Kind: KindTransport, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &Error{Kind: KindTransport, Detail: fmt.Sprintf("read response: %v", err)}
	}
	return resp, respBody, nil
}

// refreshOnce exchanges the persisted refresh token for a new access token.
// Callers retry the original request exactly once with the returned token.
// failed is the access token that got the 401: a caller that waited on the
// mutex while another goroutine refreshed finds a different persisted token
// and reuses it instead of issuing a second refresh.
func (c *Client) refreshOnce(ctx context.Context, failed string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if access := c.tokens.AccessToken(); access != "" && access != failed {
		return access, nil
	}

	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return "", c.expireSession()
	}

	payload, _ := json.Marshal(map[string]string{"refresh": refresh})
	resp, respBody, err := c.roundTrip(ctx, http.MethodPost, "/auth/token/refresh/", nil, payload, "application/json", "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.expireSession()
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil || result.Access == "" {
		return "", c.expireSession()
	}

	if err := c.tokens.SetTokens(result.Access, refresh); err != nil {
		utils.Warn("failed to persist refreshed token: %v", err)
	}
	return result.Access, nil
}

func (c *Client) expireSession() error {
	if err := c.tokens.ClearTokens(); err != nil {
		utils.Warn("failed to clear tokens: %v", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return &Error{Kind: KindAuthExpired, StatusCode: http.StatusUnauthorized, Detail: "session expired"}
}
