package neptunesign

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParameters is an ordered multimap of decoded query parameters.
// Keys keep the order in which they were first seen and each key keeps
// the order of its values, so that repeated parameters survive the round
// trip through the signing pipeline intact.
//
// The zero value is an empty, ready-to-use parameter set.
type QueryParameters struct {
	keys   []string
	values map[string][]string
}

// Add appends value to the list held for key, registering the key on
// first use.
func (q *QueryParameters) Add(key, value string) {
	if q.values == nil {
		q.values = make(map[string][]string)
	}
	if _, seen := q.values[key]; !seen {
		q.keys = append(q.keys, key)
	}
	q.values[key] = append(q.values[key], value)
}

// Get returns the values recorded for key in insertion order. The
// returned slice is nil when the key is absent.
func (q *QueryParameters) Get(key string) []string {
	if q.values == nil {
		return nil
	}
	return q.values[key]
}

// Keys returns the parameter names in first-seen order.
func (q *QueryParameters) Keys() []string {
	return q.keys
}

// Len returns the number of distinct parameter names.
func (q *QueryParameters) Len() int {
	return len(q.keys)
}

// Values returns a copy of the full parameter mapping. Mutating the
// result does not affect the parameter set.
func (q *QueryParameters) Values() map[string][]string {
	out := make(map[string][]string, len(q.keys))
	for key, list := range q.values {
		out[key] = append([]string(nil), list...)
	}
	return out
}

// Encode re-encodes the parameters into a raw query string. The SigV4
// signer canonicalizes (sorts and strictly escapes) the query itself, so
// Encode only needs to produce an equivalent representation, not a
// canonical one.
func (q *QueryParameters) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	vals := make(url.Values, len(q.keys))
	for key, list := range q.values {
		vals[key] = list
	}
	return vals.Encode()
}

// ParseQueryString extracts the parameters from a raw query string such
// as "param1=value1&param2=value2". The same parameter name may occur
// multiple times; values accumulate per key instead of overwriting. An
// empty query string yields an empty parameter set.
//
// Segments are split on the first "=" only; a segment without "=" maps
// the whole segment to the empty string. Keys and values are URL-decoded
// ("+" decodes to a space, as the wire format of HTML form queries
// requires).
func ParseQueryString(rawQuery string) (QueryParameters, error) {
	var params QueryParameters
	if rawQuery == "" {
		return params, nil
	}

	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}

		rawKey := segment
		rawValue := ""
		if i := strings.IndexByte(segment, '='); i >= 0 {
			rawKey = segment[:i]
			rawValue = segment[i+1:]
		}

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return QueryParameters{}, fmt.Errorf("decode query parameter name %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return QueryParameters{}, fmt.Errorf("decode query parameter value %q: %w", rawValue, err)
		}

		params.Add(key, value)
	}

	return params, nil
}
