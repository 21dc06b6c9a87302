package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// Client talks to the auth backend. It attaches the stored access token and
// the tracing headers to every request, and on a 401 performs exactly one
// transparent refresh followed by exactly one retry. Concurrent 401s share
// a single in-flight refresh.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   *Store
	log     zerolog.Logger

	refreshMu sync.Mutex
	inflight  *refreshCall
}

// refreshCall lets concurrent callers wait on one refresh attempt and share
// its outcome.
type refreshCall struct {
	done chan struct{}
	err  error
}

// RegisterData is the registration payload.
type RegisterData struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

type authEnvelope struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

func NewClient(baseURL string, store *Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		store:   store,
		log:     log,
	}
}

// Login authenticates and returns the user together with the issued pair.
// Persisting the pair is the caller's job; the client never writes the
// store here, keeping the two concerns independently testable.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	env, err := c.postAuth(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return env.User, *env.Tokens, nil
}

// Register creates an account and returns the user with the issued pair.
func (c *Client) Register(ctx context.Context, data RegisterData) (*domain.User, domain.TokenPair, error) {
	env, err := c.postAuth(ctx, "/auth/register", data)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	return env.User, *env.Tokens, nil
}

// FetchProfile returns the authenticated user, refreshing transparently if
// the access token has expired.
func (c *Client) FetchProfile(ctx context.Context) (*domain.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return env.User, nil
}

// Logout is best-effort: a backend failure is logged and swallowed, and the
// local store is cleared unconditionally.
func (c *Client) Logout(ctx context.Context) {
	defer c.store.Clear()

	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("logout call failed; tearing session down locally")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("logout rejected; tearing session down locally")
	}
}

// Refresh exchanges the refresh token for a new pair. Used directly in
// tests; normal traffic goes through the transparent path in do.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return domain.TokenPair{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", bytes.NewReader(body), "")
	if err != nil {
		return domain.TokenPair{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TokenPair{}, domain.ErrUnauthenticated
	}

	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domain.TokenPair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if env.Tokens == nil || !env.Tokens.Complete() {
		return domain.TokenPair{}, domain.ErrUnauthenticated
	}
	return *env.Tokens, nil
}

// do performs an authenticated request. On a 401 with a refresh token at
// hand it runs the shared refresh exactly once and retries the original
// request exactly once; a failed refresh clears the store and surfaces
// ErrSessionExpired. Retried requests never loop.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	access, _ := c.store.Get(domain.AccessTokenName)

	resp, err := c.send(ctx, method, path, bytes.NewReader(body), access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	refresh, ok := c.store.Get(domain.RefreshTokenName)
	if !ok {
		return resp, nil
	}
	resp.Body.Close()

	if err := c.refreshShared(ctx, refresh); err != nil {
		return nil, err
	}

	access, _ = c.store.Get(domain.AccessTokenName)
	return c.send(ctx, method, path, bytes.NewReader(body), access)
}

// refreshShared de-duplicates concurrent refreshes: the first 401 starts
// the rotation, later ones wait for and share its result.
func (c *Client) refreshShared(ctx context.Context, refreshToken string) error {
	c.refreshMu.Lock()
	if call := c.inflight; call != nil {
		c.refreshMu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	c.inflight = call
	c.refreshMu.Unlock()

	pair, err := c.Refresh(ctx, refreshToken)
	if err == nil {
		err = c.store.Set(pair)
	}
	if err != nil {
		// Unrecoverable: the session is over and both tokens go.
		c.store.Clear()
		err = errors.Join(domain.ErrSessionExpired, err)
	}

	call.err = err
	close(call.done)

	c.refreshMu.Lock()
	c.inflight = nil
	c.refreshMu.Unlock()

	return err
}

// send issues one HTTP request with the tracing headers and optional bearer
// token. No retries happen at this level.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, access string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-request-id", uuid.NewString())
	req.Header.Set("x-request-time", time.Now().UTC().Format(time.RFC3339))
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// postAuth handles the unauthenticated credential endpoints, mapping a 401
// to ErrInvalidCredentials.
func (c *Client) postAuth(ctx context.Context, path string, payload any) (*authEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, path, bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, statusError(resp)
	}

	var env authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if env.Tokens == nil || !env.Tokens.Complete() {
		return nil, domain.ErrTokenPersistence
	}
	return &env, nil
}

func statusError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	if envelope.Error == "" {
		envelope.Error = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	return fmt.Errorf("backend error (%d): %s", resp.StatusCode, envelope.Error)
}
