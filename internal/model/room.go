package model

import "time"

// RoomStatus enumerates the occupancy states of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// MaxSlots is the hard cap on simultaneous occupants per room. An occupant
// is either a distinct collaborator reference or the room's pre-checkin.
const MaxSlots = 2

// Room is the leaf occupancy unit of the hierarchy.
//
// The authoritative record of who occupies a room is CollaboratorIDs.
// Collaborators is a denormalized cache of the matching directory records,
// rebuilt from the tenant's directory during normalization; it exists for
// serialization consumers and is never written directly.
//
// Fields:
//  ID                   – entity identifier.
//  Name                 – display name of the room.
//  Capacity             – bed capacity, always ≥ 1; raised automatically
//                         when occupants exceed it.
//  Guests               – current guest count; forced to 0 outside the
//                         occupied status.
//  Status               – available, occupied or maintenance.
//  CollaboratorIDs      – ids of assigned collaborators, unique, ≤ MaxSlots.
//  Collaborators        – cached directory records for CollaboratorIDs.
//  MaintenanceNote      – why the room is under maintenance.
//  MaintenanceZone      – affected zone (e.g. "baño", "dormitorio").
//  MaintenanceAreaType  – kind of area affected.
//  MaintenanceUpdatedAt – when the maintenance fields last changed.
//  PreCheckin           – future-dated placeholder occupancy, or nil.
type Room struct {
	ID                   ID             `json:"id"`
	Name                 string         `json:"name"`
	Capacity             int            `json:"capacity"`
	Guests               int            `json:"guests"`
	Status               RoomStatus     `json:"status"`
	CollaboratorIDs      []ID           `json:"collaboratorIds"`
	Collaborators        []Collaborator `json:"collaborators"`
	MaintenanceNote      string         `json:"maintenanceNote,omitempty"`
	MaintenanceZone      string         `json:"maintenanceZone,omitempty"`
	MaintenanceAreaType  string         `json:"maintenanceAreaType,omitempty"`
	MaintenanceUpdatedAt *time.Time     `json:"maintenanceUpdatedAt,omitempty"`
	PreCheckin           *PreCheckin    `json:"preCheckin"`
}

// OccupantCount counts distinct assigned collaborators plus one when a
// pre-checkin holds a slot.
func (r *Room) OccupantCount() int {
	n := len(r.CollaboratorIDs)
	if r.PreCheckin != nil {
		n++
	}
	return n
}

// FreeSlots reports how many of the room's slots remain open.
func (r *Room) FreeSlots() int {
	free := MaxSlots - r.OccupantCount()
	if free < 0 {
		return 0
	}
	return free
}

// HasCollaborator reports whether the collaborator currently occupies the
// room.
func (r *Room) HasCollaborator(id ID) bool {
	for _, cid := range r.CollaboratorIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// ClearMaintenance resets all maintenance annotations.
func (r *Room) ClearMaintenance() {
	r.MaintenanceNote = ""
	r.MaintenanceZone = ""
	r.MaintenanceAreaType = ""
	r.MaintenanceUpdatedAt = nil
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	cr := *r
	cr.CollaboratorIDs = append([]ID(nil), r.CollaboratorIDs...)
	cr.Collaborators = append([]Collaborator(nil), r.Collaborators...)
	if r.MaintenanceUpdatedAt != nil {
		t := *r.MaintenanceUpdatedAt
		cr.MaintenanceUpdatedAt = &t
	}
	if r.PreCheckin != nil {
		pc := *r.PreCheckin
		cr.PreCheckin = &pc
	}
	return &cr
}
