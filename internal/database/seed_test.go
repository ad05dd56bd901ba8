package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionCountFor(t *testing.T) {
	assert.Equal(t, 6, positionCountFor("rtv"))
	assert.Equal(t, 1, positionCountFor("nws"))
	// codes outside the lookup fall back to the default
	assert.Equal(t, defaultPositionCount, positionCountFor("txt"))
	assert.Equal(t, defaultPositionCount, positionCountFor("unknown"))
}

func TestStarterCatalogIsConsistent(t *testing.T) {
	codes := map[string]bool{}
	for _, st := range starterTypes {
		assert.NotEmpty(t, st.Name)
		assert.NotEmpty(t, st.Code)
		assert.False(t, codes[st.Code], "duplicate seed code %q", st.Code)
		codes[st.Code] = true
		assert.GreaterOrEqual(t, positionCountFor(st.Code), 1)
	}
	prefixes := map[string]bool{}
	for _, sc := range starterCategories {
		assert.False(t, prefixes[sc.Prefix], "duplicate seed prefix %q", sc.Prefix)
		prefixes[sc.Prefix] = true
	}
}
