package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/handler"
	"github.com/mktops/hid-generator/internal/middleware"
)

// RegisterAdmin registers the admin-only CRUD surface under /v1/admin.
// All routes require a valid JWT with the admin role.  Catalog and history
// mutations carry the cache invalidator because their tables feed the
// cached option and history reads; user mutations do not, so they skip it.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, hist *handler.HistoryHandler, jwtSecret string, invalidate echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	// ---- Users ----
	g.GET("/users", a.ListUsers)
	g.POST("/users", a.CreateUser)
	g.PUT("/users/:username", a.UpdateUser)
	g.DELETE("/users/:username", a.DeleteUser)

	// ---- Categories ----
	g.GET("/categories", a.ListCategories)
	g.POST("/categories", a.CreateCategory, invalidate)
	g.PUT("/categories/:id", a.UpdateCategory, invalidate)
	g.DELETE("/categories/:id", a.DeleteCategory, invalidate)

	// ---- Component types (position count syncs on update) ----
	g.GET("/types", a.ListTypes)
	g.POST("/types", a.CreateType, invalidate)
	g.PUT("/types/:id", a.UpdateType, invalidate)
	g.DELETE("/types/:id", a.DeleteType, invalidate)

	// ---- History ----
	g.DELETE("/history", hist.Clear, invalidate)
}
