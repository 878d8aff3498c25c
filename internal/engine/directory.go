package engine

import (
	"fmt"
	"strings"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// UpsertCollaborator synchronizes one collaborator record from the
// external directory into the tenant dataset. The directory owns the
// record's lifecycle; the core only keeps a copy to validate room
// references and to serve the denormalized room caches.
//
// A record with a zero or provisional id is inserted under a fresh
// persisted id. An existing id updates the stored copy, and every room
// cache referencing it is rebuilt.
func (e *Engine) UpsertCollaborator(ds *model.TenantDataset, c model.Collaborator) (*model.Collaborator, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	if strings.TrimSpace(c.Codigo) == "" || strings.TrimSpace(c.Nombre) == "" {
		return nil, fmt.Errorf("%w: collaborator codigo and nombre are required", ErrValidation)
	}
	c.Codigo = strings.TrimSpace(c.Codigo)
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Apellido = strings.TrimSpace(c.Apellido)

	if !c.ID.IsZero() && !c.ID.IsLocal() {
		if cur := ds.FindCollaborator(c.ID); cur != nil {
			*cur = c
			e.refreshRoomCaches(ds, c.ID)
			return cur, nil
		}
	}
	c.ID = c.ID.Persist()
	stored := c
	ds.Collaborators = append(ds.Collaborators, &stored)
	return &stored, nil
}

// DeactivateCollaborator marks a collaborator as inactive. Existing room
// assignments are kept; an inactive collaborator simply cannot receive
// new ones.
func (e *Engine) DeactivateCollaborator(ds *model.TenantDataset, id model.ID) (*model.Collaborator, error) {
	if ds == nil {
		return nil, ErrTenantIsolation
	}
	c := ds.FindCollaborator(id)
	if c == nil {
		return nil, fmt.Errorf("%w: collaborator %s", ErrNotFound, id)
	}
	c.Active = false
	e.refreshRoomCaches(ds, id)
	return c, nil
}

// refreshRoomCaches rebuilds the denormalized collaborator cache of every
// room referencing the given collaborator.
func (e *Engine) refreshRoomCaches(ds *model.TenantDataset, id model.ID) {
	for _, p := range ds.Palaces {
		for _, f := range p.Floors {
			for _, a := range f.Apartments {
				for _, r := range a.Rooms {
					if r.HasCollaborator(id) {
						normalizeRoom(ds, r)
					}
				}
			}
		}
	}
}
