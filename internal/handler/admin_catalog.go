package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/repository"
)

// ----- DTOs -----

type categoryReq struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}
type typeReq struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Positions int    `json:"positions"`
}
type typePart struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Positions int    `json:"positions"`
}

// ListCategories returns all categories.
func (h *AdminHandler) ListCategories(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load categories failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// CreateCategory adds a category.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Prefix) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and prefix required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Categories.Create(ctx, req.Name, req.Prefix)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateCategory renames a category or changes its prefix.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Prefix) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and prefix required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Categories.Update(ctx, id, req.Name, req.Prefix); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		case errors.Is(err, repository.ErrCategoryExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update category failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteCategory removes a category.  History rows keep their copied
// names, so nothing else needs cleanup.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete category failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTypes returns all component types with their current position count.
func (h *AdminHandler) ListTypes(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	types, err := h.Types.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load types failed"})
	}
	out := make([]typePart, 0, len(types))
	for _, t := range types {
		n, err := h.Types.CountPositions(ctx, t.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load positions failed"})
		}
		out = append(out, typePart{ID: t.ID, Name: t.Name, Code: t.Code, Positions: n})
	}
	return c.JSON(http.StatusOK, echo.Map{"types": out})
}

// CreateType adds a component type together with its initial position
// batch 1..positions.
func (h *AdminHandler) CreateType(c echo.Context) error {
	var req typeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code required"})
	}
	if req.Positions < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "positions must be at least 1"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Types.CreateWithPositions(ctx, req.Name, req.Code, req.Positions)
	if err != nil {
		if errors.Is(err, repository.ErrTypeCodeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "type code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create type failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateType changes name/code and grows or shrinks the position list to
// the requested count.  A count equal to the current one leaves the
// position rows untouched.
func (h *AdminHandler) UpdateType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req typeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code required"})
	}
	if req.Positions < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "positions must be at least 1"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Types.Update(ctx, id, req.Name, req.Code, req.Positions); err != nil {
		switch {
		case errors.Is(err, repository.ErrTypeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		case errors.Is(err, repository.ErrTypeCodeExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "type code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update type failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteType removes a type and its positions; positions go first so no
// orphaned rows survive.
func (h *AdminHandler) DeleteType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Types.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete type failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
