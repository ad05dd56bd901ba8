package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/config"
	"github.com/mktops/hid-generator/internal/repository"
)

// AdminHandler bundles the repositories the admin surface maintains.  The
// token repo is here so account deletes and password changes can end the
// affected user's open sessions.
type AdminHandler struct {
	Cfg        config.Config
	Users      *repository.UserRepo
	Tokens     *repository.TokenRepo
	Categories *repository.CategoryRepo
	Types      *repository.TypeRepo
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, tok *repository.TokenRepo, cat *repository.CategoryRepo, typ *repository.TypeRepo) *AdminHandler {
	if u == nil || tok == nil || cat == nil || typ == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: u, Tokens: tok, Categories: cat, Types: typ}
}

// ----- DTOs -----

type createUserReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | user
}
type updateUserReq struct {
	Password *string `json:"password"` // nil leaves the password unchanged
	Role     string  `json:"role"`     // empty keeps the current role
}
type adminUserPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// normalizeRole maps free-form input onto the two known roles, defaulting
// to the unprivileged one.
func normalizeRole(role string) string {
	if strings.ToLower(strings.TrimSpace(role)) == "admin" {
		return "admin"
	}
	return "user"
}

// ListUsers returns all accounts without credential material.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	out := make([]adminUserPart, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserPart{ID: u.ID, Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// CreateUser adds an account.  A username collision is reported as a
// conflict, distinct from other failures.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	role := normalizeRole(req.Role)

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, adminUserPart{ID: id, Username: strings.ToLower(req.Username), Role: role})
}

// UpdateUser changes role and optionally the password of the :username
// account.  Supplying a password regenerates salt and hash, invalidating
// the old password immediately.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password != nil && *req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must not be empty"})
	}

	var newRole *string
	if strings.TrimSpace(req.Role) != "" {
		role := normalizeRole(req.Role)
		newRole = &role
	}
	if req.Password == nil && newRole == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	userID, err := h.Users.Update(ctx, username, req.Password, newRole)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	// A password change ends every session the old password opened.
	if req.Password != nil {
		if err := h.Tokens.RevokeAllForUser(ctx, userID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser removes an account unless it belongs to the configured
// protected set (at minimum the seed admin).
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
	}
	if h.Cfg.IsProtected(username) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is protected and cannot be deleted"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	// Sessions go first: once the row is gone there is no ID left to
	// revoke by, and a deleted account must not keep refreshing.
	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
	}
	if err := h.Users.Delete(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
