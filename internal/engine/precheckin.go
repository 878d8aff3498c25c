package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// PreCheckinInput carries the payload for SetPreCheckin. CheckinDate is
// the raw timestamp string received at the boundary; it must parse as
// RFC 3339.
type PreCheckinInput struct {
	GuestName   *string
	CheckinDate string
	Notes       string
}

// SetPreCheckin reserves one of a room's slots for a future arrival. The
// reservation is tracked as a distinct slot-consuming attribute: it does
// not change the room's status or guest count, but it does count against
// the slot cap, so a room already holding two collaborators cannot take a
// pre-checkin.
func (e *Engine) SetPreCheckin(ds *model.TenantDataset, roomID model.ID, in PreCheckinInput) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, _, r := ds.FindRoom(roomID)
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	when, err := time.Parse(time.RFC3339, strings.TrimSpace(in.CheckinDate))
	if err != nil {
		return nil, fmt.Errorf("%w: checkin date %q is not a valid timestamp", ErrValidation, in.CheckinDate)
	}
	if r.PreCheckin == nil && len(r.CollaboratorIDs) >= model.MaxSlots {
		return nil, fmt.Errorf("%w: room %q has no free slot for a pre-checkin", ErrCapacity, r.Name)
	}
	var name *string
	if in.GuestName != nil {
		trimmed := strings.TrimSpace(*in.GuestName)
		if trimmed != "" {
			name = &trimmed
		}
	}
	r.PreCheckin = &model.PreCheckin{
		GuestName:   name,
		CheckinDate: when.UTC(),
		Notes:       truncateNote(strings.TrimSpace(in.Notes)),
	}
	return r, nil
}

// ClearPreCheckin releases a room's pre-checkin slot. No other room field
// changes.
func (e *Engine) ClearPreCheckin(ds *model.TenantDataset, roomID model.ID) (*model.Room, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, _, r := ds.FindRoom(roomID)
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	r.PreCheckin = nil
	return r, nil
}
