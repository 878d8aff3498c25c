package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

func TestAssignCouplesStatusAndGuests(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	room := roomAt(p, 0, 0, 0)

	r, err := e.Assign(ds, room.ID, []model.ID{ana, bea})
	require.NoError(t, err)
	assert.Equal(t, model.RoomOccupied, r.Status)
	assert.Equal(t, 2, r.Guests)
	require.Len(t, r.Collaborators, 2)
	assert.Equal(t, "Ana", r.Collaborators[0].Nombre)

	r, err = e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)
	assert.Equal(t, model.RoomOccupied, r.Status)
	assert.Equal(t, 1, r.Guests)

	r, err = e.Assign(ds, room.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, r.Status)
	assert.Equal(t, 0, r.Guests)
	assert.Empty(t, r.CollaboratorIDs)
}

func TestAssignRejectsOverfullSet(t *testing.T) {
	e, ds, p := newFixture(t)
	ids := []model.ID{
		addCollaborator(t, e, ds, "E-001", "Ana"),
		addCollaborator(t, e, ds, "E-002", "Beatriz"),
		addCollaborator(t, e, ds, "E-003", "Carla"),
	}
	room := roomAt(p, 0, 0, 0)

	_, err := e.Assign(ds, room.ID, ids)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Empty(t, room.CollaboratorIDs)
	assert.Equal(t, model.RoomAvailable, room.Status)
}

func TestAssignRejectsDuplicateAndUnknown(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	room := roomAt(p, 0, 0, 0)

	_, err := e.Assign(ds, room.ID, []model.ID{ana, ana})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.Assign(ds, room.ID, []model.ID{ana, model.NewID()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRejectsInactiveCollaborator(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	_, err := e.DeactivateCollaborator(ds, ana)
	require.NoError(t, err)

	_, err = e.Assign(ds, roomAt(p, 0, 0, 0).ID, []model.ID{ana})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignBlockedByOutOfServiceApartment(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	apt := p.Floors[0].Apartments[0]
	_, err := e.SetApartmentStatus(ds, apt.ID, model.ApartmentOutOfService, "tubería rota")
	require.NoError(t, err)

	_, err = e.Assign(ds, apt.Rooms[0].ID, []model.ID{ana})
	assert.ErrorIs(t, err, ErrOutOfService)

	// Emptying a room in an out-of-service apartment stays allowed.
	_, err = e.Assign(ds, apt.Rooms[0].ID, nil)
	assert.NoError(t, err)
}

func TestAssignCountsPreCheckinSlot(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	room := roomAt(p, 0, 0, 0)

	_, err := e.SetPreCheckin(ds, room.ID, PreCheckinInput{CheckinDate: "2026-09-15T14:00:00Z"})
	require.NoError(t, err)

	_, err = e.Assign(ds, room.ID, []model.ID{ana, bea})
	assert.ErrorIs(t, err, ErrCapacity)

	r, err := e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Guests)
	assert.Equal(t, 0, r.FreeSlots())
}

func TestAssignRaisesCapacity(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	apt := p.Floors[0].Apartments[0]
	r, err := e.AddRoom(ds, apt.ID, "Individual", 1)
	require.NoError(t, err)

	r, err = e.Assign(ds, r.ID, []model.ID{ana, bea})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Capacity)
}

func TestAssignKeepsMaintenancePrecedence(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	room := roomAt(p, 0, 0, 0)
	_, err := e.SetRoomStatus(ds, room.ID, model.RoomMaintenance, &MaintenanceDetail{Note: "aire acondicionado"})
	require.NoError(t, err)

	r, err := e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)
	assert.Equal(t, model.RoomMaintenance, r.Status)
	assert.Equal(t, 0, r.Guests)
	assert.Len(t, r.CollaboratorIDs, 1)
}

func TestAssignRecordsMovements(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	room := roomAt(p, 0, 0, 0)

	_, err := e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)
	require.Len(t, ds.CollaboratorMovements, 1)
	assert.Equal(t, model.MovementAssign, ds.CollaboratorMovements[0].Kind)
	assert.Equal(t, ana, ds.CollaboratorMovements[0].CollaboratorID)
	assert.Nil(t, ds.CollaboratorMovements[0].FromRoomID)
	require.NotNil(t, ds.CollaboratorMovements[0].ToRoomID)
	assert.Equal(t, room.ID, *ds.CollaboratorMovements[0].ToRoomID)

	// Replacing ana with bea records one unassign and one assign.
	_, err = e.Assign(ds, room.ID, []model.ID{bea})
	require.NoError(t, err)
	assert.Len(t, ds.CollaboratorMovements, 3)
}

func TestUnassign(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	room := roomAt(p, 0, 0, 0)
	_, err := e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)

	r, err := e.Unassign(ds, room.ID, ana)
	require.NoError(t, err)
	assert.Empty(t, r.CollaboratorIDs)
	assert.Equal(t, model.RoomAvailable, r.Status)
	assert.Equal(t, 0, r.Guests)

	// Removing an absent collaborator is a silent no-op.
	before := len(ds.CollaboratorMovements)
	r, err = e.Unassign(ds, room.ID, ana)
	require.NoError(t, err)
	assert.Len(t, ds.CollaboratorMovements, before)

	_, err = e.Unassign(ds, model.NewID(), ana)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMove(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	from := roomAt(p, 0, 0, 0)
	to := roomAt(p, 1, 0, 1)
	_, err := e.Assign(ds, from.ID, []model.ID{ana})
	require.NoError(t, err)

	gotFrom, gotTo, err := e.Move(ds, ana, from.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, gotFrom.Status)
	assert.Empty(t, gotFrom.CollaboratorIDs)
	assert.Equal(t, model.RoomOccupied, gotTo.Status)
	assert.True(t, gotTo.HasCollaborator(ana))

	last := ds.CollaboratorMovements[len(ds.CollaboratorMovements)-1]
	assert.Equal(t, model.MovementMove, last.Kind)
	require.NotNil(t, last.FromRoomID)
	require.NotNil(t, last.ToRoomID)
	assert.Equal(t, from.ID, *last.FromRoomID)
	assert.Equal(t, to.ID, *last.ToRoomID)
}

func TestMoveRejectsFullDestinationWithoutTouchingEitherRoom(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	carla := addCollaborator(t, e, ds, "E-003", "Carla")
	from := roomAt(p, 0, 0, 0)
	to := roomAt(p, 0, 0, 1)
	_, err := e.Assign(ds, from.ID, []model.ID{ana})
	require.NoError(t, err)
	_, err = e.Assign(ds, to.ID, []model.ID{bea, carla})
	require.NoError(t, err)

	_, _, err = e.Move(ds, ana, from.ID, to.ID)
	assert.ErrorIs(t, err, ErrDestinationFull)
	assert.True(t, from.HasCollaborator(ana))
	assert.Equal(t, model.RoomOccupied, from.Status)
	assert.Equal(t, 1, from.Guests)
	assert.Len(t, to.CollaboratorIDs, 2)
}

func TestMoveRejectsOutOfServiceDestination(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	from := roomAt(p, 0, 0, 0)
	toApt := p.Floors[1].Apartments[0]
	_, err := e.Assign(ds, from.ID, []model.ID{ana})
	require.NoError(t, err)
	_, err = e.SetApartmentStatus(ds, toApt.ID, model.ApartmentOutOfService, "reforma")
	require.NoError(t, err)

	_, _, err = e.Move(ds, ana, from.ID, toApt.Rooms[0].ID)
	assert.ErrorIs(t, err, ErrOutOfService)
	assert.True(t, from.HasCollaborator(ana))
}

func TestMoveEdgeCases(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	from := roomAt(p, 0, 0, 0)
	to := roomAt(p, 0, 0, 1)

	// Not assigned to the source room.
	_, _, err := e.Move(ds, ana, from.ID, to.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Already in the destination: no-op, no movement recorded.
	_, err = e.Assign(ds, to.ID, []model.ID{ana})
	require.NoError(t, err)
	before := len(ds.CollaboratorMovements)
	_, _, err = e.Move(ds, ana, to.ID, to.ID)
	require.NoError(t, err)
	assert.Len(t, ds.CollaboratorMovements, before)
}
