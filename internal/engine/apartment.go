package engine

import (
	"fmt"
	"strings"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// SetApartmentStatus transitions an apartment between active and
// out_of_service. Entering out_of_service stores the trimmed,
// length-capped note; returning to active clears the note unconditionally.
//
// What happens to the apartment's rooms is a configuration decision.
// Without OutOfServiceCascade the rooms keep their own state and existing
// occupants stay where they are; the out-of-service condition is applied
// only when palace statistics are aggregated. With the cascade enabled
// every room is forced into maintenance and its assignments evicted.
func (e *Engine) SetApartmentStatus(ds *model.TenantDataset, apartmentID model.ID, status model.ApartmentStatus, note string) (*model.Apartment, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	_, _, a := ds.FindApartment(apartmentID)
	if a == nil {
		return nil, fmt.Errorf("%w: apartment %s", ErrNotFound, apartmentID)
	}
	switch status {
	case model.ApartmentActive:
		a.Status = model.ApartmentActive
		a.OutOfServiceNote = ""
	case model.ApartmentOutOfService:
		a.Status = model.ApartmentOutOfService
		a.OutOfServiceNote = truncateNote(strings.TrimSpace(note))
		if e.cfg.OutOfServiceCascade {
			e.cascadeOutOfService(ds, a)
		}
	default:
		return nil, fmt.Errorf("%w: unknown apartment status %q", ErrValidation, status)
	}
	return a, nil
}

// cascadeOutOfService forces every room of the apartment into maintenance
// and evicts its occupants, recording the evictions in the movement
// history.
func (e *Engine) cascadeOutOfService(ds *model.TenantDataset, a *model.Apartment) {
	now := e.now().UTC()
	for _, r := range a.Rooms {
		for _, cid := range r.CollaboratorIDs {
			roomID := r.ID
			e.recordMovement(ds, cid, model.MovementUnassign, &roomID, nil)
		}
		r.CollaboratorIDs = r.CollaboratorIDs[:0]
		r.Guests = 0
		r.Status = model.RoomMaintenance
		r.MaintenanceNote = a.OutOfServiceNote
		r.MaintenanceZone = "apartamento"
		r.MaintenanceAreaType = "fuera_de_servicio"
		r.MaintenanceUpdatedAt = &now
		normalizeRoom(ds, r)
	}
}
