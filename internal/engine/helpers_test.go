package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// newFixture builds an engine and a tenant dataset holding one palace of
// 2 floors x 2 apartments x 2 rooms, capacity 2 each.
func newFixture(t *testing.T) (*Engine, *model.TenantDataset, *model.Palace) {
	t.Helper()
	e := New(Config{})
	ds := model.NewTenantDataset()
	p, err := e.CreatePalace(ds, CreatePalaceInput{
		Name:           "Palacio Norte",
		Floors:         2,
		ApartmentsEach: 2,
		RoomsEach:      2,
		RoomCapacity:   2,
	})
	require.NoError(t, err)
	return e, ds, p
}

func addCollaborator(t *testing.T, e *Engine, ds *model.TenantDataset, codigo, nombre string) model.ID {
	t.Helper()
	c, err := e.UpsertCollaborator(ds, model.Collaborator{Codigo: codigo, Nombre: nombre, Active: true})
	require.NoError(t, err)
	return c.ID
}

func roomAt(p *model.Palace, floor, apt, room int) *model.Room {
	return p.Floors[floor].Apartments[apt].Rooms[room]
}
