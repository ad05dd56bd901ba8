// Package hid builds marketing placement identifiers and splices them into
// URLs.  Everything here is pure computation; persistence of the result is
// the caller's concern.
package hid

import (
	"net/url"
	"strconv"
	"strings"
)

// ParamKey is the query parameter the generated identifier is stored
// under.  Any pre-existing parameter with this key is overwritten.
const ParamKey = "hid"

// DefaultMaxPosition bounds the fallback candidate range used when a
// component type has no position list of its own.
const DefaultMaxPosition = 20

// Build composes the identifier token from a category prefix, a component
// type code and a slot position: prefix_code_position.
func Build(prefix, code string, position int) string {
	return prefix + "_" + code + "_" + strconv.Itoa(position)
}

// MergeIntoURL returns rawURL with the hid parameter merged into its query
// string.  Pre-existing parameters keep their original order and encoding;
// an existing hid parameter is overwritten in place, otherwise hid is
// appended last.  Structurally odd but parseable input (e.g. a URL without
// a scheme) round-trips rather than erroring.
func MergeIntoURL(rawURL, hidValue string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = mergeQuery(u.RawQuery, hidValue)
	return u.String(), nil
}

// mergeQuery rewrites a raw query string, replacing the hid pair if one
// exists and appending it otherwise.  Other pairs are carried over
// verbatim so their escaping and order are untouched.
func mergeQuery(rawQuery, hidValue string) string {
	pair := ParamKey + "=" + url.QueryEscape(hidValue)
	if rawQuery == "" {
		return pair
	}
	parts := strings.Split(rawQuery, "&")
	replaced := false
	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p == "" {
			continue
		}
		key := p
		if i := strings.IndexByte(p, '='); i >= 0 {
			key = p[:i]
		}
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if key == ParamKey {
			if !replaced {
				out = append(out, pair)
				replaced = true
			}
			continue
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, pair)
	}
	return strings.Join(out, "&")
}

// DefaultPositions returns the 1..DefaultMaxPosition candidate range used
// when a type's position list is empty.
func DefaultPositions() []int {
	out := make([]int, DefaultMaxPosition)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
