package engine

import (
	"fmt"
	"strings"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// MaintenanceDetail carries the annotations required when a room enters
// maintenance.
type MaintenanceDetail struct {
	Note     string
	Zone     string
	AreaType string
}

// SetRoomStatus drives the room state machine.
//
//	available   – guest count forced to 0, maintenance fields cleared.
//	              Collaborator assignments are untouched; only the
//	              assignment engine mutates those.
//	occupied    – a zero guest count is bumped to min(1, capacity);
//	              maintenance fields cleared.
//	maintenance – guest count forced to 0; the caller must supply the
//	              maintenance detail, whose note is trimmed and
//	              length-capped.
//
// Any other status is rejected. The transition's side effects are
// observable only through the room's own fields.
func (e *Engine) SetRoomStatus(ds *model.TenantDataset, roomID model.ID, next model.RoomStatus, maint *MaintenanceDetail) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, _, r := ds.FindRoom(roomID)
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	switch next {
	case model.RoomAvailable:
		r.Guests = 0
		r.ClearMaintenance()
	case model.RoomOccupied:
		if r.Guests == 0 {
			g := 1
			if r.Capacity < 1 {
				g = 0
			}
			r.Guests = g
		}
		r.ClearMaintenance()
	case model.RoomMaintenance:
		if maint == nil || strings.TrimSpace(maint.Note) == "" {
			return nil, fmt.Errorf("%w: maintenance requires a note", ErrValidation)
		}
		r.Guests = 0
		r.MaintenanceNote = truncateNote(strings.TrimSpace(maint.Note))
		r.MaintenanceZone = strings.TrimSpace(maint.Zone)
		r.MaintenanceAreaType = strings.TrimSpace(maint.AreaType)
		now := e.now().UTC()
		r.MaintenanceUpdatedAt = &now
	default:
		return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, next)
	}
	r.Status = next
	return r, nil
}
