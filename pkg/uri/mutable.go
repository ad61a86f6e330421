// SPDX-License-Identifier: MPL-2.0

package uri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MutableUri is a fluent builder for Uri values.
//
//	u := uri.New().
//		Scheme("http").
//		Host("example.com").
//		Port(80).
//		Path("/a").
//		Query("x", "1").
//		Query("x", "2")
//	s := u.String() // "http://example.com:80/a?x=1&x=2"
type MutableUri struct {
	u Uri
}

// New creates an empty MutableUri.
func New() *MutableUri {
	return &MutableUri{}
}

// Parse deconstructs a URI string into a MutableUri. The query string is
// split on '&' then '=' with both sides percent-decoded; a pair with more
// than one '=' yields a MalformedQueryPairError. User info and fragment are
// query-unescaped ('+' means space), matching the encoding String() applies.
func Parse(s string) (*MutableUri, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, &MalformedUriError{Input: s, Cause: err}
	}

	m := New()
	m.u.scheme = parsed.Scheme

	if parsed.User != nil {
		userInfo, err := decodeUserInfo(rawUserInfo(s))
		if err != nil {
			return nil, &MalformedUriError{Input: s, Cause: err}
		}
		m.u.userInfo = userInfo
	}

	m.u.host = parsed.Hostname()

	if portStr := parsed.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, &MalformedUriError{Input: s, Cause: err}
		}
		m.u.port = port
	}

	// Keep the path in raw form so String() never re-encodes it.
	m.u.path = parsed.EscapedPath()

	if parsed.RawQuery != "" {
		query, err := parseQuery(parsed.RawQuery)
		if err != nil {
			return nil, err
		}
		m.u.query = query
	}

	if parsed.Fragment != "" {
		fragment, err := url.QueryUnescape(parsed.EscapedFragment())
		if err != nil {
			return nil, &MalformedUriError{Input: s, Cause: err}
		}
		m.u.fragment = fragment
	}

	return m, nil
}

// rawUserInfo extracts the still-encoded user-info component from a URI
// string. net/url decodes user-info with '+' as a literal plus, which is
// asymmetric with the query-style encoding String() applies, so the raw
// form is recovered here and query-unescaped instead.
func rawUserInfo(s string) string {
	i := strings.Index(s, "//")
	if i < 0 {
		return ""
	}
	authority := s[i+2:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		authority = authority[:end]
	}
	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return ""
	}
	return authority[:at]
}

// decodeUserInfo query-unescapes user and password separately, mirroring
// encodeUserInfo.
func decodeUserInfo(raw string) (string, error) {
	user, pass, ok := strings.Cut(raw, ":")
	u, err := url.QueryUnescape(user)
	if err != nil {
		return "", err
	}
	if !ok {
		return u, nil
	}
	p, err := url.QueryUnescape(pass)
	if err != nil {
		return "", err
	}
	return u + ":" + p, nil
}

// parseQuery splits a raw query string into ordered parameters.
func parseQuery(rawQuery string) (*Params, error) {
	params := &Params{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, "=")
		if len(parts) > 2 {
			return nil, &MalformedQueryPairError{Pair: pair, Query: rawQuery}
		}

		name, err := url.QueryUnescape(parts[0])
		if err != nil {
			return nil, fmt.Errorf("decode query name %q: %w", parts[0], err)
		}

		if len(parts) == 1 {
			params.AddFlag(name)
			continue
		}

		value, err := url.QueryUnescape(parts[1])
		if err != nil {
			return nil, fmt.Errorf("decode query value %q: %w", parts[1], err)
		}
		params.Add(name, value)
	}
	return params, nil
}

// Scheme sets the URI scheme.
func (m *MutableUri) Scheme(scheme string) *MutableUri {
	m.u.scheme = scheme
	return m
}

// UserInfo sets the user-info component (decoded form).
func (m *MutableUri) UserInfo(userInfo string) *MutableUri {
	m.u.userInfo = userInfo
	return m
}

// Host sets the host.
func (m *MutableUri) Host(host string) *MutableUri {
	m.u.host = host
	return m
}

// Port sets the port. Passing 0 clears it.
func (m *MutableUri) Port(port int) *MutableUri {
	m.u.port = port
	return m
}

// Path sets the path. The value is emitted verbatim by String(), so callers
// passing already-encoded paths will not see them double-encoded.
func (m *MutableUri) Path(path string) *MutableUri {
	m.u.path = path
	return m
}

// Query appends a value for the named query parameter.
func (m *MutableUri) Query(name, value string) *MutableUri {
	m.params().Add(name, value)
	return m
}

// QueryFlag appends a value-less occurrence of the named query parameter.
func (m *MutableUri) QueryFlag(name string) *MutableUri {
	m.params().AddFlag(name)
	return m
}

// SetQuery replaces all prior values for the named query parameter.
func (m *MutableUri) SetQuery(name, value string) *MutableUri {
	m.params().Set(name, value)
	return m
}

// Fragment sets the fragment (decoded form).
func (m *MutableUri) Fragment(fragment string) *MutableUri {
	m.u.fragment = fragment
	return m
}

// Immutable freezes the current state into a Uri. Later mutations of the
// builder do not affect the returned value.
func (m *MutableUri) Immutable() *Uri {
	u := m.u
	u.query = m.u.query.clone()
	return &u
}

// String serializes the current state; see Uri.String for encoding rules.
func (m *MutableUri) String() string {
	return m.u.String()
}

func (m *MutableUri) params() *Params {
	if m.u.query == nil {
		m.u.query = &Params{}
	}
	return m.u.query
}
