package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/handler"
	"github.com/mktops/hid-generator/internal/middleware"
)

// RegisterGenerator registers the generator form and history endpoints.
// Any authenticated role may use them; only the admin surface is gated by
// role.  The option and history reads sit behind the response cache since
// their payloads are identical for every user; generating appends a
// history row, so it carries the invalidator to keep the cached history
// list current.
func RegisterGenerator(e *echo.Echo, g *handler.GeneratorHandler, hist *handler.HistoryHandler, jwtSecret string, cache, invalidate echo.MiddlewareFunc) {
	grp := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "user"),
	)
	grp.GET("/catalog/options", g.Options, cache)
	grp.POST("/generate", g.Generate, invalidate)
	grp.GET("/history", hist.List, cache)
}
