package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
)

// SetPreCheckin handles PUT /v1/rooms/:id/precheckin, reserving one of
// the room's slots for a future arrival. The checkin date must be an
// RFC 3339 timestamp; anything else is rejected with 400.
func (h *OccupancyHandler) SetPreCheckin(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		GuestName   *string `json:"guest_name"`
		CheckinDate string  `json:"checkin_date" validate:"required"`
		Notes       string  `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	ns := namespaceFrom(c)
	var out *model.Room
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		r, err := h.Engine.SetPreCheckin(ds, roomID, engine.PreCheckinInput{
			GuestName:   body.GuestName,
			CheckinDate: body.CheckinDate,
			Notes:       body.Notes,
		})
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

// ClearPreCheckin handles DELETE /v1/rooms/:id/precheckin.
func (h *OccupancyHandler) ClearPreCheckin(c echo.Context) error {
	roomID, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out *model.Room
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		r, err := h.Engine.ClearPreCheckin(ds, roomID)
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
