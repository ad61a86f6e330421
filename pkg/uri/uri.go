// SPDX-License-Identifier: MPL-2.0

package uri

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMalformedQueryPair is the sentinel error wrapped by MalformedQueryPairError.
	ErrMalformedQueryPair = errors.New("malformed query pair")

	// ErrMalformedUri is the sentinel error wrapped by MalformedUriError.
	ErrMalformedUri = errors.New("malformed uri")
)

type (
	// Uri is an immutable URI value: scheme, user info, host, port, path,
	// ordered multi-valued query parameters, and fragment. Build one with
	// MutableUri and freeze it via Immutable(), or parse with Parse().
	//
	// A port of 0 means "not set"; stored paths are kept in raw (already
	// encoded) form and are never re-encoded on output.
	Uri struct {
		scheme   string
		userInfo string
		host     string
		port     int
		path     string
		query    *Params
		fragment string
	}

	// MalformedQueryPairError is returned when a query pair contains more
	// than one '=' separator.
	MalformedQueryPairError struct {
		Pair  string
		Query string
	}

	// MalformedUriError is returned when a URI string cannot be split into
	// its components at all.
	MalformedUriError struct {
		Input string
		Cause error
	}
)

// Error implements the error interface.
func (e *MalformedQueryPairError) Error() string {
	return fmt.Sprintf("query pair %q in query %q has more than one '='", e.Pair, e.Query)
}

// Unwrap returns ErrMalformedQueryPair so callers can use errors.Is.
func (e *MalformedQueryPairError) Unwrap() error { return ErrMalformedQueryPair }

// Error implements the error interface.
func (e *MalformedUriError) Error() string {
	return fmt.Sprintf("cannot parse uri %q: %v", e.Input, e.Cause)
}

// Unwrap returns ErrMalformedUri so callers can use errors.Is.
func (e *MalformedUriError) Unwrap() error { return ErrMalformedUri }

// Scheme returns the URI scheme, or "" when unset.
func (u *Uri) Scheme() string { return u.scheme }

// UserInfo returns the decoded user-info component, or "" when unset.
func (u *Uri) UserInfo() string { return u.userInfo }

// Host returns the host, or "" when unset.
func (u *Uri) Host() string { return u.host }

// Port returns the port, or 0 when unset.
func (u *Uri) Port() int { return u.port }

// Path returns the raw path exactly as parsed or assigned.
func (u *Uri) Path() string { return u.path }

// Fragment returns the decoded fragment, or "" when unset.
func (u *Uri) Fragment() string { return u.fragment }

// Query returns the first value for the named query parameter.
func (u *Uri) Query(name string) (string, bool) {
	if u.query == nil {
		return "", false
	}
	return u.query.Get(name)
}

// QueryValues returns all values for the named query parameter in order.
func (u *Uri) QueryValues(name string) []string {
	if u.query == nil {
		return nil
	}
	return u.query.Values(name)
}

// QueryNames returns the query parameter names in insertion order.
func (u *Uri) QueryNames() []string {
	if u.query == nil {
		return nil
	}
	return u.query.Names()
}

// Mutable returns a MutableUri seeded with a copy of this value.
func (u *Uri) Mutable() *MutableUri {
	return &MutableUri{u: Uri{
		scheme:   u.scheme,
		userInfo: u.userInfo,
		host:     u.host,
		port:     u.port,
		path:     u.path,
		query:    u.query.clone(),
		fragment: u.fragment,
	}}
}

// String serializes the URI. User info, query names/values, and the fragment
// are percent-encoded; the path is emitted verbatim.
func (u *Uri) String() string {
	var sb strings.Builder

	if u.scheme != "" {
		sb.WriteString(u.scheme)
		sb.WriteByte(':')
	}

	if u.host != "" {
		sb.WriteString("//")
		if u.userInfo != "" {
			sb.WriteString(encodeUserInfo(u.userInfo))
			sb.WriteByte('@')
		}
		sb.WriteString(u.host)
		if u.port != 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(u.port))
		}
	}

	sb.WriteString(u.path)

	if u.query != nil && u.query.Len() > 0 {
		sb.WriteByte('?')
		sb.WriteString(u.query.encode())
	}

	if u.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(url.QueryEscape(u.fragment))
	}

	return sb.String()
}

// encodeUserInfo percent-encodes user info while keeping the ':' separator
// between user and password intact.
func encodeUserInfo(userInfo string) string {
	user, pass, ok := strings.Cut(userInfo, ":")
	if !ok {
		return url.QueryEscape(user)
	}
	return url.QueryEscape(user) + ":" + url.QueryEscape(pass)
}
