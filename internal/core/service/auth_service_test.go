package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizboard/backoffice/internal/core/domain"
	"github.com/bizboard/backoffice/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = user.Email
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

// stubTokenStore tracks live jtis in memory, mirroring the Redis allowlist.
type stubTokenStore struct {
	live    map[string]string
	saveErr error
	swapped int
	revoked []string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{live: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, jti, userID string, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.live[jti] = userID
	return nil
}

func (s *stubTokenStore) Swap(_ context.Context, oldJTI, newJTI, userID string, _ time.Duration) error {
	if _, ok := s.live[oldJTI]; !ok {
		return domain.ErrUnauthenticated
	}
	delete(s.live, oldJTI)
	s.live[newJTI] = userID
	s.swapped++
	return nil
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.live, jti)
	s.revoked = append(s.revoked, jti)
	return nil
}

func newTestService(repo ports.AuthRepository, tokens ports.RefreshTokenStore) *AuthService {
	return NewAuthService(repo, tokens, "secret", time.Hour, 24*time.Hour)
}

func registerAdmin(t *testing.T, svc *AuthService) *domain.User {
	t.Helper()
	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "admin@example.com",
		Password:  "Admin123!",
		FirstName: "Ada",
		LastName:  "Admin",
		Role:      "ADMIN",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), newStubTokenStore())

	user := registerAdmin(t, svc)
	if user.PasswordHash == "Admin123!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Admin123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_DefaultsRole(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), newStubTokenStore())

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "rep@example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleSales {
		t.Fatalf("expected SALES default, got %s", user.Role)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), newStubTokenStore())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "x@example.com",
		Password: "Secret123!",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login_IssuesPairWithClaims(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestService(newStubAuthRepo(), tokens)
	registerAdmin(t, svc)

	user, pair, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if !pair.Complete() {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims["role"] != "ADMIN" || claims["typ"] != "access" {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	refreshClaims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(pair.RefreshToken, refreshClaims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	jti, _ := refreshClaims["jti"].(string)
	if jti == "" {
		t.Fatalf("refresh token missing jti")
	}
	if _, ok := tokens.live[jti]; !ok {
		t.Fatalf("refresh jti not allowlisted")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestService(newStubAuthRepo(), tokens)
	registerAdmin(t, svc)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), newStubTokenStore())

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestService(newStubAuthRepo(), tokens)
	registerAdmin(t, svc)

	_, pair, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !rotated.Complete() {
		t.Fatalf("expected a complete rotated pair")
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}
	if tokens.swapped != 1 {
		t.Fatalf("expected 1 swap, got %d", tokens.swapped)
	}

	// The old refresh token is single-use: replaying it must fail.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for replayed token, got %v", err)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestService(newStubAuthRepo(), tokens)
	registerAdmin(t, svc)

	_, pair, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for access token, got %v", err)
	}
}

func TestAuthService_Logout_RevokesRefreshToken(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestService(newStubAuthRepo(), tokens)
	registerAdmin(t, svc)

	_, pair, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(tokens.revoked) != 1 {
		t.Fatalf("expected 1 revocation, got %d", len(tokens.revoked))
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected refresh after logout to fail, got %v", err)
	}
}

func TestAuthService_Logout_ToleratesGarbageToken(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), newStubTokenStore())

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("expected nil for unparseable token, got %v", err)
	}
}
