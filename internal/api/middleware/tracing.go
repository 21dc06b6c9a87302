package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Header names of the per-request tracing contract. Clients send both; the
// server fills in whatever is missing so every request is traceable.
const (
	HeaderRequestID   = "x-request-id"
	HeaderRequestTime = "x-request-time"
)

// Tracing guarantees x-request-id and x-request-time on every request and
// echoes the id back on the response.
func Tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				req.Header.Set(HeaderRequestID, id)
			}
			if req.Header.Get(HeaderRequestTime) == "" {
				req.Header.Set(HeaderRequestTime, time.Now().UTC().Format(time.RFC3339))
			}

			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}
