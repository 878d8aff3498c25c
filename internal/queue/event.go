// Package queue defines the message payloads exchanged over the broker
// and the background consumer that mirrors them into logs/movements.log.
package queue

// MovementEvent is published whenever a collaborator assignment changes.
// It carries enough information for downstream consumers to log, notify
// or feed housekeeping systems without querying the occupancy core.
type MovementEvent struct {
	Namespace        string `json:"namespace"`
	CollaboratorID   string `json:"collaborator_id"`
	CollaboratorName string `json:"collaborator_name,omitempty"`
	Kind             string `json:"kind"` // assign | unassign | move
	FromRoomID       string `json:"from_room_id,omitempty"`
	FromRoomName     string `json:"from_room_name,omitempty"`
	ToRoomID         string `json:"to_room_id,omitempty"`
	ToRoomName       string `json:"to_room_name,omitempty"`
	At               string `json:"at"`
}
