package hid

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	assert.Equal(t, "hm_rtv_3", Build("hm", "rtv", 3))
	assert.Equal(t, "plp_grd_12", Build("plp", "grd", 12))
	assert.Equal(t, "clp_nws_1", Build("clp", "nws", 1))
}

func TestMergeIntoURLAppendsWhenNoQuery(t *testing.T) {
	got, err := MergeIntoURL("https://shop.example.com/page", "hm_rtv_3")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/page?hid=hm_rtv_3", got)
}

func TestMergeIntoURLPreservesExistingParams(t *testing.T) {
	got, err := MergeIntoURL("https://shop.example.com/page?ref=ads", "hm_rtv_3")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/page?ref=ads&hid=hm_rtv_3", got)

	// parameter order is kept for everything that was already there
	got, err = MergeIntoURL("https://x.test/p?b=2&a=1&c=3", "plp_crs_5")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/p?b=2&a=1&c=3&hid=plp_crs_5", got)
}

func TestMergeIntoURLOverwritesExistingHid(t *testing.T) {
	got, err := MergeIntoURL("https://x.test/p?hid=old_value&ref=ads", "hm_rtv_3")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/p?hid=hm_rtv_3&ref=ads", got)
}

func TestMergeIntoURLRoundTrip(t *testing.T) {
	base := "https://shop.example.com/page?ref=ads&utm_source=mail&x=a%20b"
	got, err := MergeIntoURL(base, "pdp_cpr_7")
	require.NoError(t, err)

	before, err := url.Parse(base)
	require.NoError(t, err)
	after, err := url.Parse(got)
	require.NoError(t, err)

	wantQ := before.Query()
	gotQ := after.Query()
	for k, v := range wantQ {
		assert.Equal(t, v, gotQ[k], "parameter %q changed", k)
	}
	assert.Equal(t, []string{"pdp_cpr_7"}, gotQ["hid"])
	assert.Len(t, gotQ, len(wantQ)+1)
}

func TestMergeIntoURLKeepsFragment(t *testing.T) {
	got, err := MergeIntoURL("https://x.test/p?a=1#section", "hm_rtv_1")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/p?a=1&hid=hm_rtv_1#section", got)
}

func TestMergeIntoURLSchemelessInput(t *testing.T) {
	// no scheme: the input still round-trips structurally
	got, err := MergeIntoURL("shop.example.com/page?ref=ads", "hm_rtv_3")
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com/page?ref=ads&hid=hm_rtv_3", got)
}

func TestDefaultPositions(t *testing.T) {
	ps := DefaultPositions()
	require.Len(t, ps, DefaultMaxPosition)
	assert.Equal(t, 1, ps[0])
	assert.Equal(t, DefaultMaxPosition, ps[len(ps)-1])
}
