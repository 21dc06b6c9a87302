package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizboard/backoffice/internal/api/metrics"
	"github.com/bizboard/backoffice/internal/core/domain"
	"github.com/bizboard/backoffice/internal/core/ports"
)

// AuthHandler exposes the session lifecycle endpoints. Token cookies are
// written by the handler, not the service, so the two remain independently
// testable.
type AuthHandler struct {
	authService ports.AuthService
	cookies     *CookieWriter
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies *CookieWriter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN SALES FINANCE OPERATIONS"`
	Department string `json:"department,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type authResponse struct {
	User   *domain.User      `json:"user,omitempty"`
	Tokens *domain.TokenPair `json:"tokens,omitempty"`
}

// Register creates a new account and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	if err := h.cookies.Write(c, pair); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user, Tokens: &pair})
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	// Cookie persistence is a precondition of the session: if the write
	// cannot be confirmed, fail the login rather than hand out a token
	// pair the next navigation will not see.
	if err := h.cookies.Write(c, pair); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{User: user, Tokens: &pair})
}

// Refresh rotates the token pair.
//
// @Summary      Rotate the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (falls back to the cookie)"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshTokenFrom(c)
	if token == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return domain.ErrUnauthenticated
	}

	pair, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		// A dead refresh token ends the session: both cookies go.
		h.cookies.Clear(c)
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		metrics.SessionsEndedTotal.WithLabelValues("refresh_failed").Inc()
		return err
	}

	if err := h.cookies.Write(c, pair); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Tokens: &pair})
}

// Logout tears the session down. Backend revocation is best-effort: a store
// failure is logged and swallowed, the cookies are cleared regardless.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.refreshTokenFrom(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("refresh token revocation failed")
		}
	}

	h.cookies.Clear(c)
	metrics.SessionsEndedTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Profile returns the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: user})
}

// refreshTokenFrom prefers the request body, falling back to the cookie for
// browser clients.
func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	var req refreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := c.Cookie(domain.RefreshTokenName); err == nil {
		return cookie.Value
	}
	return ""
}
