package model

import "time"

// Collaborator is a staff member that can be housed in a room. The record
// itself is owned by an external directory service; the core only stores a
// synchronized copy per tenant and validates room references against it.
//
// Fields:
//  ID           – entity identifier.
//  Codigo       – employee code from the directory.
//  Nombre       – first name.
//  Apellido     – last name.
//  Departamento – department the collaborator works in.
//  Posicion     – job position.
//  Active       – whether the collaborator is currently employable for
//                 room assignment.
type Collaborator struct {
	ID           ID     `json:"id"`
	Codigo       string `json:"codigo"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Departamento string `json:"departamento"`
	Posicion     string `json:"posicion"`
	Active       bool   `json:"active"`
}

// FullName renders "Nombre Apellido" for event payloads and logs.
func (c Collaborator) FullName() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}

// MovementKind enumerates the kinds of assignment movements recorded per
// tenant.
type MovementKind string

const (
	MovementAssign   MovementKind = "assign"
	MovementUnassign MovementKind = "unassign"
	MovementMove     MovementKind = "move"
)

// MovementRecord is one entry of a tenant's assignment history. FromRoomID
// and ToRoomID are nil when the movement had no source or destination
// respectively (a first assignment has no source, an unassignment has no
// destination).
type MovementRecord struct {
	ID             ID           `json:"id"`
	CollaboratorID ID           `json:"collaboratorId"`
	FromRoomID     *ID          `json:"fromRoomId,omitempty"`
	ToRoomID       *ID          `json:"toRoomId,omitempty"`
	Kind           MovementKind `json:"kind"`
	At             time.Time    `json:"at"`
}
