package handler // handler package contains assignment and room state handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
	"github.com/roomdesk/palace-occupancy/internal/queue"
	movement_publisher "github.com/roomdesk/palace-occupancy/internal/service"
)

// AssignRoom handles PUT /v1/rooms/:id/assignments and replaces the
// room's occupant set wholesale.
func (h *OccupancyHandler) AssignRoom(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		CollaboratorIDs []string `json:"collaborator_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ids := make([]model.ID, 0, len(body.CollaboratorIDs))
	for _, raw := range body.CollaboratorIDs {
		id, err := parseID(raw)
		if err != nil {
			return errJSON(c, err)
		}
		ids = append(ids, id)
	}
	ns := namespaceFrom(c)
	var out *model.Room
	var events []queue.MovementEvent
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		mark := len(ds.CollaboratorMovements)
		r, err := h.Engine.Assign(ds, roomID, ids)
		if err != nil {
			return err
		}
		out = r.Clone()
		events = movementEvents(ds, ns, mark)
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	publishMovements(events)
	return c.JSON(http.StatusOK, out)
}

// UnassignRoom handles DELETE /v1/rooms/:id/assignments/:collaboratorId.
// The engine treats a missing assignment as a no-op, so the handler
// checks presence first to surface a user-facing error.
func (h *OccupancyHandler) UnassignRoom(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	collabID, err := parseID(c.Param("collaboratorId"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out *model.Room
	var events []queue.MovementEvent
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		_, _, _, r := ds.FindRoom(roomID)
		if r == nil {
			return engine.ErrNotFound
		}
		if !r.HasCollaborator(collabID) {
			return engine.ErrNotFound
		}
		mark := len(ds.CollaboratorMovements)
		updated, err := h.Engine.Unassign(ds, roomID, collabID)
		if err != nil {
			return err
		}
		out = updated.Clone()
		events = movementEvents(ds, ns, mark)
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	publishMovements(events)
	return c.JSON(http.StatusOK, out)
}

// MoveCollaborator handles POST /v1/assignments/move, relocating a
// collaborator between rooms as one atomic step.
func (h *OccupancyHandler) MoveCollaborator(c echo.Context) error {
	var body struct {
		CollaboratorID string `json:"collaborator_id" validate:"required"`
		FromRoomID     string `json:"from_room_id" validate:"required"`
		ToRoomID       string `json:"to_room_id" validate:"required"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	collabID, err := parseID(body.CollaboratorID)
	if err != nil {
		return errJSON(c, err)
	}
	fromID, err := parseID(body.FromRoomID)
	if err != nil {
		return errJSON(c, err)
	}
	toID, err := parseID(body.ToRoomID)
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var from, to *model.Room
	var events []queue.MovementEvent
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		mark := len(ds.CollaboratorMovements)
		f, t, err := h.Engine.Move(ds, collabID, fromID, toID)
		if err != nil {
			return err
		}
		from, to = f.Clone(), t.Clone()
		events = movementEvents(ds, ns, mark)
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	publishMovements(events)
	return c.JSON(http.StatusOK, echo.Map{"from": from, "to": to})
}

// SetRoomStatus handles PUT /v1/rooms/:id/status and drives the room
// state machine.
func (h *OccupancyHandler) SetRoomStatus(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		Status              string `json:"status" validate:"required"`
		MaintenanceNote     string `json:"maintenance_note"`
		MaintenanceZone     string `json:"maintenance_zone"`
		MaintenanceAreaType string `json:"maintenance_area_type"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	var maint *engine.MaintenanceDetail
	if model.RoomStatus(body.Status) == model.RoomMaintenance {
		maint = &engine.MaintenanceDetail{
			Note:     body.MaintenanceNote,
			Zone:     body.MaintenanceZone,
			AreaType: body.MaintenanceAreaType,
		}
	}
	ns := namespaceFrom(c)
	var out *model.Room
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		r, err := h.Engine.SetRoomStatus(ds, roomID, model.RoomStatus(body.Status), maint)
		if err != nil {
			return err
		}
		out = r.Clone()
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// movementEvents converts the movement records appended after mark into
// broker events, resolving display names while the dataset is still at
// hand.
func movementEvents(ds *model.TenantDataset, ns string, mark int) []queue.MovementEvent {
	records := ds.CollaboratorMovements[mark:]
	if len(records) == 0 {
		return nil
	}
	events := make([]queue.MovementEvent, 0, len(records))
	for _, rec := range records {
		ev := queue.MovementEvent{
			Namespace:      ns,
			CollaboratorID: rec.CollaboratorID.String(),
			Kind:           string(rec.Kind),
			At:             rec.At.Format(time.RFC3339),
		}
		if col := ds.FindCollaborator(rec.CollaboratorID); col != nil {
			ev.CollaboratorName = col.FullName()
		}
		if rec.FromRoomID != nil {
			ev.FromRoomID = rec.FromRoomID.String()
			if _, _, _, r := ds.FindRoom(*rec.FromRoomID); r != nil {
				ev.FromRoomName = r.Name
			}
		}
		if rec.ToRoomID != nil {
			ev.ToRoomID = rec.ToRoomID.String()
			if _, _, _, r := ds.FindRoom(*rec.ToRoomID); r != nil {
				ev.ToRoomName = r.Name
			}
		}
		events = append(events, ev)
	}
	return events
}

// publishMovements ships events to the broker without blocking the
// request; a broker outage only loses the notification, never the
// mutation.
func publishMovements(events []queue.MovementEvent) {
	if len(events) == 0 {
		return
	}
	go func(evs []queue.MovementEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, ev := range evs {
			_ = movement_publisher.PublishMovement(ctx, ev)
		}
	}(events)
}
