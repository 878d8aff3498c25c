package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
)

func createPalace(t *testing.T, s *Store, e *engine.Engine, ns, name string) model.ID {
	t.Helper()
	var id model.ID
	err := s.WithTenant(ns, func(ds *model.TenantDataset) error {
		p, err := e.CreatePalace(ds, engine.CreatePalaceInput{Name: name})
		if err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	require.NoError(t, err)
	return id
}

func TestWithTenantCommitsOnSuccess(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio Norte")

	err := s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		require.Len(t, ds.Palaces, 1)
		assert.Equal(t, "Palacio Norte", ds.Palaces[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestWithTenantRollsBackOnError(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio Norte")

	boom := errors.New("boom")
	err := s.WithTenant("hotel-a", func(ds *model.TenantDataset) error {
		// The mutation lands on the working copy only.
		if _, err := e.CreatePalace(ds, engine.CreatePalaceInput{Name: "Palacio Sur"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		assert.Len(t, ds.Palaces, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestTenantsAreIsolated(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio A")
	createPalace(t, s, e, "hotel-b", "Palacio B")

	err := s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		require.Len(t, ds.Palaces, 1)
		assert.Equal(t, "Palacio A", ds.Palaces[0].Name)
		return nil
	})
	require.NoError(t, err)
	err = s.ViewTenant("hotel-b", func(ds *model.TenantDataset) error {
		require.Len(t, ds.Palaces, 1)
		assert.Equal(t, "Palacio B", ds.Palaces[0].Name)
		return nil
	})
	require.NoError(t, err)
	err = s.ViewTenant(DefaultNamespace, func(ds *model.TenantDataset) error {
		assert.Empty(t, ds.Palaces)
		return nil
	})
	require.NoError(t, err)
}

func TestViewTenantDiscardsMutations(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio Norte")

	err := s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		ds.Palaces = nil
		return nil
	})
	require.NoError(t, err)
	err = s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		assert.Len(t, ds.Palaces, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestWithTenantRejectsEmptyNamespace(t *testing.T) {
	s := New()
	err := s.WithTenant("   ", func(*model.TenantDataset) error { return nil })
	assert.ErrorIs(t, err, engine.ErrTenantIsolation)
}

func TestRegisterClonesDefaultDataset(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, DefaultNamespace, "Palacio Semilla")

	require.NoError(t, s.Register("hotel-nuevo"))
	err := s.ViewTenant("hotel-nuevo", func(ds *model.TenantDataset) error {
		require.Len(t, ds.Palaces, 1)
		assert.Equal(t, "Palacio Semilla", ds.Palaces[0].Name)
		return nil
	})
	require.NoError(t, err)

	// The clone is independent of the default tenant afterwards.
	createPalace(t, s, e, DefaultNamespace, "Palacio Posterior")
	err = s.ViewTenant("hotel-nuevo", func(ds *model.TenantDataset) error {
		assert.Len(t, ds.Palaces, 1)
		return nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Register("hotel-nuevo"), ErrTenantExists)
	assert.ErrorIs(t, s.Register(DefaultNamespace), ErrTenantExists)
	assert.Equal(t, []string{DefaultNamespace, "hotel-nuevo"}, s.Namespaces())
}

func TestConcurrentTenantsDoNotInterleaveState(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	const perTenant = 25

	var wg sync.WaitGroup
	for _, ns := range []string{"hotel-a", "hotel-b", "hotel-c"} {
		wg.Add(1)
		go func(ns string) {
			defer wg.Done()
			for i := 0; i < perTenant; i++ {
				err := s.WithTenant(ns, func(ds *model.TenantDataset) error {
					_, err := e.CreatePalace(ds, engine.CreatePalaceInput{
						Name: fmt.Sprintf("%s %d", ns, i),
					})
					return err
				})
				assert.NoError(t, err)
			}
		}(ns)
	}
	wg.Wait()

	for _, ns := range []string{"hotel-a", "hotel-b", "hotel-c"} {
		err := s.ViewTenant(ns, func(ds *model.TenantDataset) error {
			require.Len(t, ds.Palaces, perTenant)
			for _, p := range ds.Palaces {
				assert.Contains(t, p.Name, ns)
			}
			return nil
		})
		require.NoError(t, err)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	id := createPalace(t, s, e, "hotel-a", "Palacio Norte")

	payload, err := s.Snapshot("hotel-a")
	require.NoError(t, err)

	require.NoError(t, s.Restore("hotel-b", e, payload))
	err = s.ViewTenant("hotel-b", func(ds *model.TenantDataset) error {
		p := ds.FindPalace(id)
		require.NotNil(t, p)
		assert.Equal(t, "Palacio Norte", p.Name)
		assert.Equal(t, "Piso 1", p.Floors[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestRestoreRejectsBadPayload(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio Norte")

	err := s.Restore("hotel-a", e, []byte("{not json"))
	assert.ErrorIs(t, err, engine.ErrValidation)

	// A palace without floors fails normalization and aborts the swap.
	err = s.Restore("hotel-a", e, []byte(`{"palaces":[{"id":"x","name":"Roto","floors":[]}]}`))
	assert.ErrorIs(t, err, engine.ErrStructural)

	err = s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		assert.Len(t, ds.Palaces, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestRestoreReconcilesRoomState(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	payload := []byte(`{"palaces":[{"id":"p1","name":"Palacio Norte","floors":[{"id":"f1","apartments":[{"id":"a1","rooms":[
		{"id":"r1","name":"Habitación 1","capacity":2,"status":"available","guests":7},
		{"id":"r2","name":"Habitación 2","capacity":2,"status":"occupied","guests":0}
	]}]}]}]}`)

	require.NoError(t, s.Restore("hotel-a", e, payload))
	err := s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		rooms := ds.Palaces[0].Floors[0].Apartments[0].Rooms
		assert.Equal(t, model.RoomAvailable, rooms[0].Status)
		assert.Equal(t, 0, rooms[0].Guests)
		assert.Equal(t, model.RoomOccupied, rooms[1].Status)
		assert.Equal(t, 1, rooms[1].Guests)
		return nil
	})
	require.NoError(t, err)
}

func TestRestoreRejectsUnknownRoomStatus(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})
	createPalace(t, s, e, "hotel-a", "Palacio Norte")

	payload := []byte(`{"palaces":[{"id":"p1","name":"Roto","floors":[{"id":"f1","apartments":[{"id":"a1","rooms":[
		{"id":"r1","name":"Habitación 1","capacity":2,"status":"penthouse"}
	]}]}]}]}`)
	err := s.Restore("hotel-a", e, payload)
	assert.ErrorIs(t, err, engine.ErrValidation)

	err = s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		assert.Equal(t, "Palacio Norte", ds.Palaces[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestRestoreFillsNilCollections(t *testing.T) {
	s := New()
	e := engine.New(engine.Config{})

	require.NoError(t, s.Restore("hotel-a", e, []byte(`{}`)))
	err := s.ViewTenant("hotel-a", func(ds *model.TenantDataset) error {
		assert.NotNil(t, ds.Palaces)
		assert.NotNil(t, ds.Collaborators)
		assert.NotNil(t, ds.CollaboratorMovements)
		return nil
	})
	require.NoError(t, err)
}
