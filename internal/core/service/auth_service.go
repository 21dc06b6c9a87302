package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizboard/backoffice/internal/core/domain"
	"github.com/bizboard/backoffice/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService implements registration, login, and the refresh/rotation
// lifecycle. Access and refresh tokens are always minted as a pair; the
// refresh token's jti is admitted to the allowlist so each one is usable
// exactly once.
type AuthService struct {
	repo       ports.AuthRepository
	tokens     ports.RefreshTokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(repo ports.AuthRepository, tokens ports.RefreshTokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = domain.DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = domain.DefaultRefreshTTL
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, domain.TokenPair, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleSales
	}
	if !role.Valid() {
		return nil, domain.TokenPair{}, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Department:   in.Department,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, jti, err := s.issuePair(created)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if err := s.tokens.Save(ctx, jti, created.ID, s.refreshTTL); err != nil {
		return nil, domain.TokenPair{}, err
	}

	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
		}
		return nil, domain.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, jti, err := s.issuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if err := s.tokens.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, domain.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must be
// signed, unexpired, and still on the allowlist; its jti is swapped for the
// new pair's jti so replaying it afterwards fails with ErrUnauthenticated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	userID, jti, err := s.parseRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.TokenPair{}, domain.ErrUnauthenticated
	}

	pair, newJTI, err := s.issuePair(user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.tokens.Swap(ctx, jti, newJTI, user.ID, s.refreshTTL); err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}

// Logout revokes the refresh token's allowlist entry. An unparseable token
// is not an error here: the caller is tearing the session down regardless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, jti, err := s.parseRefresh(refreshToken)
	if err != nil {
		return nil
	}
	return s.tokens.Revoke(ctx, jti)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, userID)
}

// issuePair mints a new access/refresh pair for the user and returns the
// refresh token's jti for allowlisting.
func (s *AuthService) issuePair(user *domain.User) (domain.TokenPair, string, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"typ":   tokenTypeAccess,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	accessSigned, err := access.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return domain.TokenPair{}, "", err
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"typ": tokenTypeRefresh,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshSigned, err := refresh.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return domain.TokenPair{}, "", err
	}

	return domain.TokenPair{AccessToken: accessSigned, RefreshToken: refreshSigned}, jti, nil
}

// parseRefresh validates signature, expiry, and token type, returning the
// subject and jti.
func (s *AuthService) parseRefresh(token string) (userID, jti string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrUnauthenticated
	}

	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", "", domain.ErrUnauthenticated
	}
	userID, _ = claims["sub"].(string)
	jti, _ = claims["jti"].(string)
	if userID == "" || jti == "" {
		return "", "", domain.ErrUnauthenticated
	}
	return userID, jti, nil
}
