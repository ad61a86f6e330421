// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing error reporting: a catalog
// of known failure modes rendered as styled markdown, and an ActionableError
// type carrying operation context and fix suggestions.
package issue
