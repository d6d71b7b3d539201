package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"https://Example.COM:443/a/b/../c?q=1#frag",
		"http://example.com:8080/path",
		"urn:ietf:params:scim:schemas:core:2.0:User",
		"urn:example:a123,z456?+r-stuff?=q-stuff#frag",
		"https://example.com/a%2fb",
	}
	for _, c := range cases {
		u, err := Parse(c)
		require.NoError(t, err, c)
		again, err := Parse(u.String())
		require.NoError(t, err)
		assert.Equal(t, u.String(), again.String(), c)
	}
}

func TestParseNormalizesHostAndDefaultPort(t *testing.T) {
	u, err := Parse("HTTP://Example.COM:80/x")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme())
	assert.Equal(t, "example.com", u.Host())
	assert.Equal(t, "", u.Port())
	assert.Equal(t, "http://example.com/x", u.String())
}

func TestParseUppercasesPercentEscapes(t *testing.T) {
	u, err := Parse("https://example.com/a%2fb")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a%2Fb", u.String())
}

func TestParseInvalidScheme(t *testing.T) {
	_, err := Parse("not a uri")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, InvalidScheme, e.Kind)
}

func TestResolveEmptyReturnsBase(t *testing.T) {
	base, err := Parse("https://example.com/a/b?x=1#y")
	require.NoError(t, err)
	got, err := Resolve(base, "")
	require.NoError(t, err)
	assert.Equal(t, base.String(), got.String())
}

func TestResolveFragmentOnlyPreservesPathAndQuery(t *testing.T) {
	base, err := Parse("https://example.com/a/b?x=1")
	require.NoError(t, err)
	got, err := Resolve(base, "#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b?x=1#frag", got.String())
}

func TestResolveRFC3986Examples(t *testing.T) {
	base, err := Parse("http://a/b/c/d;p?q")
	require.NoError(t, err)

	cases := map[string]string{
		"g":       "http://a/b/c/g",
		"./g":     "http://a/b/c/g",
		"g/":      "http://a/b/c/g/",
		"/g":      "http://a/g",
		"//g":     "http://g",
		"?y":      "http://a/b/c/d;p?y",
		"g?y":     "http://a/b/c/g?y",
		"#s":      "http://a/b/c/d;p?q#s",
		"g#s":     "http://a/b/c/g#s",
		"..":      "http://a/b/",
		"../..":   "http://a/",
		"../../g": "http://a/g",
	}
	for ref, want := range cases {
		got, err := Resolve(base, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, want, got.String(), ref)
	}
}

func TestResolveAlwaysAbsolute(t *testing.T) {
	base, err := Parse("https://example.com/a/")
	require.NoError(t, err)
	got, err := Resolve(base, "b/c")
	require.NoError(t, err)
	assert.False(t, got.IsZero())
	assert.Equal(t, "https", got.Scheme())
}

func TestURNResolveFragment(t *testing.T) {
	base, err := Parse("urn:example:a123,z456")
	require.NoError(t, err)
	got, err := Resolve(base, "#frag")
	require.NoError(t, err)
	assert.Equal(t, "urn:example:a123,z456#frag", got.String())
}

func TestSetAuthorityRejectsURNScheme(t *testing.T) {
	u, err := Parse("urn:example:a123")
	require.NoError(t, err)
	_, err = u.SetAuthority("example.com")
	require.Error(t, err)
}

func TestSetFragmentRoundTrips(t *testing.T) {
	u, err := Parse("https://example.com/a")
	require.NoError(t, err)
	prev, hadPrev, err := u.SetFragment("new", true)
	require.NoError(t, err)
	assert.Equal(t, "", prev)
	assert.False(t, hadPrev)
	frag, has := u.Fragment()
	assert.True(t, has)
	assert.Equal(t, "new", frag)
}

func TestRootURIStripsFragment(t *testing.T) {
	u, err := Parse("https://example.com/a#frag")
	require.NoError(t, err)
	root := u.RootURI()
	_, has := root.Fragment()
	assert.False(t, has)
	assert.Equal(t, "https://example.com/a", root.String())
}
