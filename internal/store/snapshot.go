package store

import (
	"encoding/json"
	"fmt"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
)

// Snapshot serializes the namespace's entire dataset to JSON. The shape
// is the plain entity model, so an external archive can store and restore
// it without knowing anything about the engine.
func (s *Store) Snapshot(namespace string) ([]byte, error) {
	var payload []byte
	err := s.ViewTenant(namespace, func(ds *model.TenantDataset) error {
		b, err := json.Marshal(ds)
		if err != nil {
			return err
		}
		payload = b
		return nil
	})
	return payload, err
}

// Restore replaces the namespace's dataset with the deserialized payload.
// Every palace in the payload is normalized before the swap; a payload
// that fails to decode or normalize leaves the current dataset untouched.
func (s *Store) Restore(namespace string, eng *engine.Engine, payload []byte) error {
	var ds model.TenantDataset
	if err := json.Unmarshal(payload, &ds); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrValidation, err)
	}
	if ds.Palaces == nil {
		ds.Palaces = []*model.Palace{}
	}
	if ds.Collaborators == nil {
		ds.Collaborators = []*model.Collaborator{}
	}
	if ds.CollaboratorMovements == nil {
		ds.CollaboratorMovements = []model.MovementRecord{}
	}
	for _, p := range ds.Palaces {
		if _, err := eng.Normalize(&ds, p); err != nil {
			return err
		}
	}
	t, err := s.resolve(namespace)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ds = &ds
	return nil
}
