package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtectedIsCaseInsensitive(t *testing.T) {
	cfg := Config{ProtectedUsers: csvSet("admin, Design-Team")}

	assert.True(t, cfg.IsProtected("admin"))
	assert.True(t, cfg.IsProtected("Admin"))
	assert.True(t, cfg.IsProtected("  ADMIN  "))
	assert.True(t, cfg.IsProtected("design-team"))
	assert.False(t, cfg.IsProtected("someone"))
}

func TestCsvSetDropsEmptyEntries(t *testing.T) {
	s := csvSet("a,,b, ,c")
	assert.Len(t, s, 3)
	assert.True(t, s["a"] && s["b"] && s["c"])
}

func TestCsvListNormalizesAndKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"ES", "PT", "UK"}, csvList(" es,pt , uk"))
	assert.Nil(t, csvList(","))
}
