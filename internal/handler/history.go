package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/repository"
)

// HistoryHandler serves the read-only history table and the admin-only
// clear action.
type HistoryHandler struct {
	History *repository.HistoryRepo
}

func NewHistoryHandler(h *repository.HistoryRepo) *HistoryHandler {
	return &HistoryHandler{History: h}
}

// List returns generation records newest first.  The optional ?limit
// query parameter sizes the result (default 100, capped at 1000 by the
// repository).
func (h *HistoryHandler) List(c echo.Context) error {
	limit := 100
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	recs, err := h.History.List(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": recs})
}

// Clear wipes all history rows.  Registered under the admin group only.
func (h *HistoryHandler) Clear(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.History.ClearAll(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear history failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
