package engine

import (
	"fmt"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// Assign replaces a room's collaborator set wholesale. It is the only
// sanctioned way, together with Unassign and Move, to mutate a room's
// CollaboratorIDs.
//
// The request is validated in full before anything is touched: the room
// must exist, its apartment must be in service when the new set is
// non-empty, the ids must be distinct, each collaborator must exist in the
// tenant's directory copy and be active, and the resulting occupant count
// (including a held pre-checkin slot) must fit within the slot cap.
//
// On success the guest count tracks the collaborator count, the status
// flips between occupied and available unless the room is under
// maintenance (maintenance takes precedence), and capacity is raised when
// the occupants outgrow it.
func (e *Engine) Assign(ds *model.TenantDataset, roomID model.ID, collaboratorIDs []model.ID) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, apt, r := ds.FindRoom(roomID)
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	if len(collaboratorIDs) > 0 && apt.OutOfService() {
		return nil, fmt.Errorf("%w: apartment %q", ErrOutOfService, apt.Name)
	}
	if len(collaboratorIDs) > model.MaxSlots {
		return nil, fmt.Errorf("%w: %d collaborators exceed the %d-slot cap", ErrCapacity, len(collaboratorIDs), model.MaxSlots)
	}
	seen := make(map[model.ID]bool, len(collaboratorIDs))
	for _, id := range collaboratorIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: collaborator %s listed twice", ErrValidation, id)
		}
		seen[id] = true
		c := ds.FindCollaborator(id)
		if c == nil {
			return nil, fmt.Errorf("%w: collaborator %s", ErrNotFound, id)
		}
		if !c.Active {
			return nil, fmt.Errorf("%w: collaborator %s is inactive", ErrValidation, c.Codigo)
		}
	}
	occupants := len(collaboratorIDs)
	if r.PreCheckin != nil {
		occupants++
	}
	if occupants > model.MaxSlots {
		return nil, fmt.Errorf("%w: pre-checkin holds a slot, only %d left", ErrCapacity, model.MaxSlots-1)
	}

	prev := make(map[model.ID]bool, len(r.CollaboratorIDs))
	for _, id := range r.CollaboratorIDs {
		prev[id] = true
	}
	r.CollaboratorIDs = append(r.CollaboratorIDs[:0], collaboratorIDs...)
	e.settleRoom(r)
	if err := checkRoom(r); err != nil {
		return nil, err
	}
	normalizeRoom(ds, r)
	for _, id := range collaboratorIDs {
		if !prev[id] {
			e.recordMovement(ds, id, model.MovementAssign, nil, &roomID)
		}
	}
	for id := range prev {
		if !seen[id] {
			e.recordMovement(ds, id, model.MovementUnassign, &roomID, nil)
		}
	}
	return r, nil
}

// Unassign removes one collaborator from a room. A collaborator that is
// not present is a silent no-op; callers wanting a user-facing error must
// look the assignment up first.
func (e *Engine) Unassign(ds *model.TenantDataset, roomID, collaboratorID model.ID) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, _, r := ds.FindRoom(roomID)
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	removed := false
	for i, id := range r.CollaboratorIDs {
		if id == collaboratorID {
			r.CollaboratorIDs = append(r.CollaboratorIDs[:i], r.CollaboratorIDs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return r, nil
	}
	e.settleRoom(r)
	normalizeRoom(ds, r)
	e.recordMovement(ds, collaboratorID, model.MovementUnassign, &roomID, nil)
	return r, nil
}

// Move relocates a collaborator from one room to another as a single
// logical step. Moving a collaborator onto a room they already occupy is
// a no-op. Every failure path leaves both rooms exactly as they were.
func (e *Engine) Move(ds *model.TenantDataset, collaboratorID, fromRoomID, toRoomID model.ID) (*model.Room, *model.Room, error) {
	if ds == nil {
		return nil, nil, ErrTenantIsolation
	}
	_, _, _, from := ds.FindRoom(fromRoomID)
	if from == nil {
		return nil, nil, fmt.Errorf("%w: room %s", ErrNotFound, fromRoomID)
	}
	_, _, toApt, to := ds.FindRoom(toRoomID)
	if to == nil {
		return nil, nil, fmt.Errorf("%w: room %s", ErrNotFound, toRoomID)
	}
	if !from.HasCollaborator(collaboratorID) {
		return nil, nil, fmt.Errorf("%w: collaborator %s is not assigned to room %s", ErrNotFound, collaboratorID, fromRoomID)
	}
	if to.HasCollaborator(collaboratorID) {
		// Reassign in place.
		return from, to, nil
	}
	if toApt.OutOfService() {
		return nil, nil, fmt.Errorf("%w: apartment %q", ErrOutOfService, toApt.Name)
	}
	if to.FreeSlots() == 0 {
		return nil, nil, fmt.Errorf("%w: room %s", ErrDestinationFull, toRoomID)
	}

	// All checks passed; both mutations below cannot fail.
	for i, id := range from.CollaboratorIDs {
		if id == collaboratorID {
			from.CollaboratorIDs = append(from.CollaboratorIDs[:i], from.CollaboratorIDs[i+1:]...)
			break
		}
	}
	to.CollaboratorIDs = append(to.CollaboratorIDs, collaboratorID)
	e.settleRoom(from)
	e.settleRoom(to)
	normalizeRoom(ds, from)
	normalizeRoom(ds, to)
	if err := checkRoom(to); err != nil {
		return nil, nil, err
	}
	e.recordMovement(ds, collaboratorID, model.MovementMove, &fromRoomID, &toRoomID)
	return from, to, nil
}

// settleRoom recomputes guest count, status and capacity after the
// collaborator set changed. Maintenance status takes precedence and is
// never overridden here.
func (e *Engine) settleRoom(r *model.Room) {
	r.Guests = len(r.CollaboratorIDs)
	if r.Status != model.RoomMaintenance {
		if len(r.CollaboratorIDs) > 0 {
			r.Status = model.RoomOccupied
		} else {
			r.Status = model.RoomAvailable
		}
	} else {
		r.Guests = 0
	}
	if n := r.OccupantCount(); r.Capacity < n {
		r.Capacity = n
	}
	if r.Capacity < 1 {
		r.Capacity = 1
	}
}

// checkRoom asserts the slot invariant on a single room: the occupant
// count never exceeds MaxSlots and no collaborator appears twice.
func checkRoom(r *model.Room) error {
	if n := r.OccupantCount(); n > model.MaxSlots {
		return fmt.Errorf("%w: room %q holds %d occupants", ErrCapacity, r.Name, n)
	}
	seen := make(map[model.ID]bool, len(r.CollaboratorIDs))
	for _, id := range r.CollaboratorIDs {
		if seen[id] {
			return fmt.Errorf("%w: duplicate occupant %s in room %q", ErrValidation, id, r.Name)
		}
		seen[id] = true
	}
	return nil
}

// recordMovement appends one entry to the tenant's assignment history.
func (e *Engine) recordMovement(ds *model.TenantDataset, collaboratorID model.ID, kind model.MovementKind, from, to *model.ID) {
	ds.CollaboratorMovements = append(ds.CollaboratorMovements, model.MovementRecord{
		ID:             model.NewID(),
		CollaboratorID: collaboratorID,
		FromRoomID:     from,
		ToRoomID:       to,
		Kind:           kind,
		At:             e.now().UTC(),
	})
}
