package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktops/hid-generator/internal/config"
	"github.com/mktops/hid-generator/internal/repository"
)

func newTestGeneratorHandler() *GeneratorHandler {
	return NewGeneratorHandler(config.Config{},
		repository.NewCategoryRepo(nil),
		repository.NewTypeRepo(nil),
		repository.NewHistoryRepo(nil))
}

func postGenerate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, newTestGeneratorHandler().Generate(e.NewContext(req, rec)))
	return rec
}

func TestGenerateRejectsMissingBaseURL(t *testing.T) {
	rec := postGenerate(t, `{"country":"ES","category_id":1,"type_id":1,"position":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsMissingCountry(t *testing.T) {
	rec := postGenerate(t, `{"base_url":"https://x.test/p","category_id":1,"type_id":1,"position":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsZeroSelection(t *testing.T) {
	rec := postGenerate(t, `{"base_url":"https://x.test/p","country":"ES","position":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContainsPosition(t *testing.T) {
	assert.True(t, containsPosition([]int{1, 2, 3}, 2))
	assert.False(t, containsPosition([]int{1, 2, 3}, 4))
	assert.False(t, containsPosition(nil, 1))
}
