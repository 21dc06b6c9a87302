package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the single-page app shell. The same shell is returned
// for every page route; once it boots, the client session fetches the
// profile and the role router takes over. Nothing role-specific is rendered
// before that completes.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const appShell = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Backoffice</title></head>
<body><div id="root" data-loading="true"></div><script src="/assets/app.js" defer></script></body>
</html>
`

func (h *PageHandler) Shell(c echo.Context) error {
	return c.HTML(http.StatusOK, appShell)
}
