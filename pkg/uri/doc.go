// SPDX-License-Identifier: MPL-2.0

// Package uri provides an immutable Uri value and a fluent MutableUri builder.
//
// Unlike net/url, query parameters keep their insertion order and may repeat,
// and a parsed URI can be modified and serialized again without
// double-encoding the path or the query string.
package uri
