package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktops/hid-generator/internal/config"
	"github.com/mktops/hid-generator/internal/repository"
	"github.com/mktops/hid-generator/internal/utils"
)

func newAuthHandlerWithDB(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 5, RefreshTTLDays: 7}
	return NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), mock
}

func postRefresh(t *testing.T, h *AuthHandler, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"refresh_token":"`+token+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Refresh(e.NewContext(req, rec)))
	return rec
}

// A refresh token whose account has since been deleted must end the
// session with a 401, not surface as a server error, and the token must
// be spent in the process.
func TestRefreshEndsSessionOfDeletedUser(t *testing.T) {
	h, mock := newAuthHandlerWithDB(t)
	hash := utils.HashRefreshRaw("stale-session-token")

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id,username,role,salt,pwd_hash,created_at FROM users WHERE id=? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)

	rec := postRefresh(t, h, "stale-session-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Rotation must fail closed: when the old token cannot be revoked, no new
// pair may be issued.
func TestRefreshFailsWhenRevokeFails(t *testing.T) {
	h, mock := newAuthHandlerWithDB(t)
	hash := utils.HashRefreshRaw("rotating-token")

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL").
		WithArgs(hash).
		WillReturnError(errors.New("connection reset"))

	rec := postRefresh(t, h, "rotating-token")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshRejectsMissingToken(t *testing.T) {
	h, _ := newAuthHandlerWithDB(t)
	rec := postRefresh(t, h, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
