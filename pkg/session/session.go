package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// State is the session lifecycle position.
type State int

const (
	// Bootstrapping: the stored token is being exchanged for a profile;
	// the UI shows a loading indicator and renders nothing protected.
	Bootstrapping State = iota
	// Authenticated: a user is loaded.
	Authenticated
	// Anonymous: no user; protected navigation redirects to login.
	Anonymous
)

// Session is the per-tab auth state machine: Bootstrapping → Authenticated
// | Anonymous. It owns the transitions; the Client owns the wire calls; the
// Store owns the tokens.
type Session struct {
	client *Client
	store  *Store
	log    zerolog.Logger

	mu    sync.Mutex
	state State
	user  *domain.User
}

func New(client *Client, store *Store, log zerolog.Logger) *Session {
	return &Session{
		client: client,
		store:  store,
		log:    log,
		state:  Bootstrapping,
	}
}

// Bootstrap resolves the initial state: a stored access token is exchanged
// for a profile; no token or a failed fetch lands in Anonymous with any
// stale tokens cleared.
func (s *Session) Bootstrap(ctx context.Context) State {
	if _, ok := s.store.Get(domain.AccessTokenName); !ok {
		s.transition(Anonymous, nil)
		return Anonymous
	}

	user, err := s.client.FetchProfile(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("bootstrap profile fetch failed")
		s.store.Clear()
		s.transition(Anonymous, nil)
		return Anonymous
	}

	s.transition(Authenticated, user)
	return Authenticated
}

// Login authenticates, persists the pair with a read-after-write check, and
// returns the redirect target: the preserved callback path when one was
// carried through the login redirect, otherwise the role's landing route.
// Token persistence is a precondition of the redirect; if the write cannot
// be confirmed the login fails and no state changes.
func (s *Session) Login(ctx context.Context, email, password, callbackURL string) (string, error) {
	user, pair, err := s.client.Login(ctx, email, password)
	if err != nil {
		return "", err
	}

	if err := s.persist(pair); err != nil {
		return "", err
	}

	s.transition(Authenticated, user)
	if callbackURL != "" {
		return callbackURL, nil
	}
	return domain.LandingRoute(user.Role), nil
}

// Register creates the account and opens the session, mirroring Login.
func (s *Session) Register(ctx context.Context, data RegisterData) (string, error) {
	user, pair, err := s.client.Register(ctx, data)
	if err != nil {
		return "", err
	}

	if err := s.persist(pair); err != nil {
		return "", err
	}

	s.transition(Authenticated, user)
	return domain.LandingRoute(user.Role), nil
}

// Logout always succeeds locally regardless of the backend outcome.
func (s *Session) Logout(ctx context.Context) {
	s.client.Logout(ctx)
	s.transition(Anonymous, nil)
}

// RefreshUser refetches the profile. A failure that exhausted the refresh
// path drops the session to Anonymous.
func (s *Session) RefreshUser(ctx context.Context) error {
	user, err := s.client.FetchProfile(ctx)
	if err != nil {
		if _, ok := s.store.Get(domain.AccessTokenName); !ok {
			s.transition(Anonymous, nil)
		}
		return err
	}
	s.transition(Authenticated, user)
	return nil
}

// User returns the cached user, or nil when anonymous or still loading.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether the initial bootstrap is still in flight.
func (s *Session) Loading() bool {
	return s.State() == Bootstrapping
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// persist writes the pair and confirms it by reading both tokens back.
func (s *Session) persist(pair domain.TokenPair) error {
	if err := s.store.Set(pair); err != nil {
		return err
	}
	if _, ok := s.store.Get(domain.AccessTokenName); !ok {
		return domain.ErrTokenPersistence
	}
	if _, ok := s.store.Get(domain.RefreshTokenName); !ok {
		return domain.ErrTokenPersistence
	}
	return nil
}

func (s *Session) transition(state State, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
