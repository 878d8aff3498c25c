package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// SetApartmentStatus handles PUT /v1/apartments/:id/status, toggling an
// apartment between active and out_of_service.
func (h *OccupancyHandler) SetApartmentStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		Status string `json:"status" validate:"required,oneof=active out_of_service"`
		Note   string `json:"note"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	ns := namespaceFrom(c)
	var out *model.Apartment
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		a, err := h.Engine.SetApartmentStatus(ds, id, model.ApartmentStatus(body.Status), body.Note)
		if err != nil {
			return err
		}
		out = a.Clone()
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetPalaceStats handles GET /v1/palaces/:id/stats and returns aggregate
// room counts, applying the out-of-service override per apartment.
func (h *OccupancyHandler) GetPalaceStats(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out any
	err = h.Store.ViewTenant(ns, func(ds *model.TenantDataset) error {
		stats, err := h.Engine.StatsByID(ds, id)
		if err != nil {
			return err
		}
		out = stats
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
