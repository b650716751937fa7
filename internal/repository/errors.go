// Package repository defines the data access layer. Every repository
// runs hand-written parameterized statements against MySQL and
// translates low-level results (rows affected, last insert id) into
// values and sentinel errors that handlers can act on.
package repository

import "errors"

// ErrNotFound is returned when a statement matched no rows: a lookup by
// identifier came back empty, or an update/delete affected zero rows.
// Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailOrUsernameTaken signals a duplicate unique field during
// registration. Handlers translate it into an HTTP 400 so the conflict
// message matches the API contract.
var ErrEmailOrUsernameTaken = errors.New("email or username already exists")

// ErrDuplicateCartLine signals that a (user, book) cart line already
// exists when an insert was attempted. The cart handler falls back to
// merging quantities into the existing line.
var ErrDuplicateCartLine = errors.New("cart line already exists")
