// Package engine implements the occupancy core: normalization of the
// palace tree, the room state machine, the assignment engine, apartment
// lifecycle and pre-checkin scheduling. All operations take the tenant
// dataset they act on as an explicit parameter; the engine itself holds no
// mutable state. The sentinel errors below let the HTTP layer map every
// failure to a distinct status code and message with errors.Is.
package engine

import "errors"

// ErrValidation is returned for malformed input: unparsable dates,
// capacity below 1, empty required identifiers, duplicate collaborators in
// one assignment request. Handlers should translate this into an HTTP 400
// response.
var ErrValidation = errors.New("validation failed")

// ErrCapacity is returned when an operation would push a room past its
// slot cap. Handlers should translate this into an HTTP 409 response.
var ErrCapacity = errors.New("room capacity exceeded")

// ErrDestinationFull is returned by move when the target room has no free
// slot and the collaborator is not already one of its occupants. Handlers
// should translate this into an HTTP 409 response.
var ErrDestinationFull = errors.New("destination room has no free slot")

// ErrStructural is returned when a structural edit would leave a parent
// without children, such as deleting the last floor of a palace or the
// last room of an apartment. Handlers should translate this into an HTTP
// 409 response.
var ErrStructural = errors.New("structural constraint violated")

// ErrNotFound is returned when a referenced entity id is absent from the
// current tenant dataset. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("entity not found")

// ErrOutOfService is returned when an assignment targets a room whose
// apartment is out of service. Handlers should translate this into an
// HTTP 409 response.
var ErrOutOfService = errors.New("apartment is out of service")

// ErrTenantIsolation is returned when an operation runs against an
// unresolved or inconsistent dataset reference. It signals a programming
// error rather than bad input and maps to an HTTP 500 response.
var ErrTenantIsolation = errors.New("tenant dataset unresolved")
