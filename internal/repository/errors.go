// Package repository provides the MySQL-backed snapshot archive. The
// sentinel values defined here let handlers distinguish failure scenarios
// without inspecting driver errors.
package repository

import "errors"

// ErrSnapshotNotFound is returned when no archived snapshot exists for a
// namespace. Handlers should translate this into an HTTP 404 response.
var ErrSnapshotNotFound = errors.New("snapshot not found")
