package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbCtx derives a bounded context for database calls from the request.
// Every storage operation in this tool is a short single statement, so a
// shared 5 second ceiling is plenty.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

// currentUsername returns the username claim stored by the JWT middleware,
// or "unknown" when it is missing.
func currentUsername(c echo.Context) string {
	if s, ok := c.Get("username").(string); ok && s != "" {
		return s
	}
	return "unknown"
}
