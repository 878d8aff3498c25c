package engine

import (
	"fmt"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// Normalize re-derives every computed field of a palace subtree: floor and
// apartment numbers become 1-based and contiguous, derived display names
// are rebuilt, capacities are clamped to their floor of 1, room statuses
// and guest counts are reconciled with the assigned collaborators and the
// cached collaborator records on each room are rebuilt from the tenant's
// directory copy. Statuses outside the known enumerations are rejected.
// It must run after every structural mutation before the result is
// considered committed.
//
// Normalize is idempotent: running it twice yields the same tree as
// running it once. It mutates the palace in place and returns it for
// chaining.
func (e *Engine) Normalize(ds *model.TenantDataset, p *model.Palace) (*model.Palace, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil palace", ErrValidation)
	}
	if len(p.Floors) == 0 {
		return nil, fmt.Errorf("%w: palace %q has no floors", ErrStructural, p.Name)
	}
	for i, f := range p.Floors {
		if len(f.Apartments) == 0 {
			return nil, fmt.Errorf("%w: floor %d of palace %q has no apartments", ErrStructural, i+1, p.Name)
		}
		f.Number = i + 1
		f.Name = fmt.Sprintf("Piso %d", f.Number)
		for j, a := range f.Apartments {
			a.Number = j + 1
			if a.Name == "" {
				a.Name = fmt.Sprintf("Apartamento %d", a.Number)
			}
			switch a.Status {
			case "":
				a.Status = model.ApartmentActive
			case model.ApartmentActive, model.ApartmentOutOfService:
			default:
				return nil, fmt.Errorf("%w: unknown apartment status %q", ErrValidation, a.Status)
			}
			if a.Status == model.ApartmentActive {
				a.OutOfServiceNote = ""
			}
			for _, r := range a.Rooms {
				switch r.Status {
				case "", model.RoomAvailable, model.RoomOccupied, model.RoomMaintenance:
				default:
					return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, r.Status)
				}
				normalizeRoom(ds, r)
			}
		}
	}
	return p, nil
}

// normalizeRoom rebuilds a single room's derived fields. CollaboratorIDs
// is the source of truth; the Collaborators cache is recomputed from the
// directory so the two can never drift, and status and guest count are
// reconciled with the collaborator set so externally supplied subtrees
// cannot commit an inconsistent room. Unknown ids are dropped from the
// cache but kept in CollaboratorIDs so a directory re-sync can restore
// them.
func normalizeRoom(ds *model.TenantDataset, r *model.Room) {
	r.CollaboratorIDs = dedupeIDs(r.CollaboratorIDs)
	r.Collaborators = r.Collaborators[:0]
	for _, id := range r.CollaboratorIDs {
		if c := ds.FindCollaborator(id); c != nil {
			r.Collaborators = append(r.Collaborators, *c)
		}
	}
	if r.Collaborators == nil {
		r.Collaborators = []model.Collaborator{}
	}
	if r.Status == "" {
		r.Status = model.RoomAvailable
	}
	// Status and guest count are reconciled like after an assignment:
	// maintenance keeps its status with zero guests, collaborators force
	// occupied with a matching guest count, an occupied room without
	// collaborators keeps at least one walk-in guest, and everything
	// else is available with zero guests.
	switch {
	case r.Status == model.RoomMaintenance:
		r.Guests = 0
	case len(r.CollaboratorIDs) > 0:
		r.Status = model.RoomOccupied
		r.Guests = len(r.CollaboratorIDs)
	case r.Status == model.RoomOccupied:
		if r.Guests < 1 {
			r.Guests = 1
		}
	default:
		r.Guests = 0
	}
	min := r.OccupantCount()
	if min < 1 {
		min = 1
	}
	if r.Capacity < min {
		r.Capacity = min
	}
}

// dedupeIDs removes duplicate ids while preserving order.
func dedupeIDs(ids []model.ID) []model.ID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[model.ID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
