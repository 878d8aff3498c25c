package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

func TestSetPreCheckinHoldsSlotWithoutChangingStatus(t *testing.T) {
	e, ds, p := newFixture(t)
	room := roomAt(p, 0, 0, 0)
	name := "  Diego Fuentes  "

	r, err := e.SetPreCheckin(ds, room.ID, PreCheckinInput{
		GuestName:   &name,
		CheckinDate: "2026-09-15T14:00:00+02:00",
		Notes:       "llega tarde",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, r.Status)
	assert.Equal(t, 0, r.Guests)
	assert.Equal(t, 1, r.OccupantCount())
	assert.Equal(t, 1, r.FreeSlots())
	require.NotNil(t, r.PreCheckin)
	require.NotNil(t, r.PreCheckin.GuestName)
	assert.Equal(t, "Diego Fuentes", *r.PreCheckin.GuestName)
	assert.Equal(t, time.UTC, r.PreCheckin.CheckinDate.Location())
	assert.Equal(t, "2026-09-15T12:00:00Z", r.PreCheckin.CheckinDate.Format(time.RFC3339))
}

func TestSetPreCheckinWithoutGuestName(t *testing.T) {
	e, ds, p := newFixture(t)
	blank := "   "

	r, err := e.SetPreCheckin(ds, roomAt(p, 0, 0, 0).ID, PreCheckinInput{
		GuestName:   &blank,
		CheckinDate: "2026-09-15T14:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, r.PreCheckin.GuestName)
}

func TestSetPreCheckinRejectsBadTimestamp(t *testing.T) {
	e, ds, p := newFixture(t)

	_, err := e.SetPreCheckin(ds, roomAt(p, 0, 0, 0).ID, PreCheckinInput{CheckinDate: "15/09/2026"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetPreCheckinRejectsFullRoom(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	bea := addCollaborator(t, e, ds, "E-002", "Beatriz")
	room := roomAt(p, 0, 0, 0)
	_, err := e.Assign(ds, room.ID, []model.ID{ana, bea})
	require.NoError(t, err)

	_, err = e.SetPreCheckin(ds, room.ID, PreCheckinInput{CheckinDate: "2026-09-15T14:00:00Z"})
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestSetPreCheckinReplacesExistingReservation(t *testing.T) {
	e, ds, p := newFixture(t)
	ana := addCollaborator(t, e, ds, "E-001", "Ana")
	room := roomAt(p, 0, 0, 0)
	_, err := e.Assign(ds, room.ID, []model.ID{ana})
	require.NoError(t, err)
	_, err = e.SetPreCheckin(ds, room.ID, PreCheckinInput{CheckinDate: "2026-09-15T14:00:00Z"})
	require.NoError(t, err)

	// Overwriting the held reservation needs no extra slot.
	r, err := e.SetPreCheckin(ds, room.ID, PreCheckinInput{CheckinDate: "2026-09-20T10:00:00Z", Notes: "cambio de fecha"})
	require.NoError(t, err)
	assert.Equal(t, "cambio de fecha", r.PreCheckin.Notes)
	assert.Equal(t, 0, r.FreeSlots())
}

func TestClearPreCheckinReleasesSlot(t *testing.T) {
	e, ds, p := newFixture(t)
	room := roomAt(p, 0, 0, 0)
	_, err := e.SetPreCheckin(ds, room.ID, PreCheckinInput{CheckinDate: "2026-09-15T14:00:00Z"})
	require.NoError(t, err)

	r, err := e.ClearPreCheckin(ds, room.ID)
	require.NoError(t, err)
	assert.Nil(t, r.PreCheckin)
	assert.Equal(t, 2, r.FreeSlots())

	_, err = e.ClearPreCheckin(ds, model.NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}
