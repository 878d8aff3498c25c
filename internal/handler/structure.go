package handler // handler package contains structural mutation handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/model"
)

// palaceView is the wire shape returned by every structural operation:
// the normalized subtree plus the recomputed aggregate statistics.
type palaceView struct {
	Palace *model.Palace      `json:"palace"`
	Stats  engine.PalaceStats `json:"stats"`
}

// ListPalaces handles GET /v1/palaces and returns every palace of the
// tenant with its statistics, ordered as stored (creation order; clients
// sort by seriesNumber for display).
func (h *OccupancyHandler) ListPalaces(c echo.Context) error {
	ns := namespaceFrom(c)
	var out []palaceView
	err := h.Store.ViewTenant(ns, func(ds *model.TenantDataset) error {
		out = make([]palaceView, 0, len(ds.Palaces))
		for _, p := range ds.Palaces {
			out = append(out, palaceView{Palace: p, Stats: h.Engine.Stats(p)})
		}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePalace handles POST /v1/palaces and creates a palace seeded with
// the requested child counts.
func (h *OccupancyHandler) CreatePalace(c echo.Context) error {
	var body struct {
		Name               string `json:"name" validate:"required"`
		SeriesNumber       int    `json:"series_number"`
		Floors             int    `json:"floors" validate:"gte=0,lte=50"`
		ApartmentsPerFloor int    `json:"apartments_per_floor" validate:"gte=0,lte=50"`
		RoomsPerApartment  int    `json:"rooms_per_apartment" validate:"gte=0,lte=20"`
		RoomCapacity       int    `json:"room_capacity" validate:"gte=0,lte=10"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	ns := namespaceFrom(c)
	var out palaceView
	err := h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		p, err := h.Engine.CreatePalace(ds, engine.CreatePalaceInput{
			Name:           body.Name,
			SeriesNumber:   body.SeriesNumber,
			Floors:         body.Floors,
			ApartmentsEach: body.ApartmentsPerFloor,
			RoomsEach:      body.RoomsPerApartment,
			RoomCapacity:   body.RoomCapacity,
		})
		if err != nil {
			return err
		}
		out = palaceView{Palace: p.Clone(), Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GetPalace handles GET /v1/palaces/:id.
func (h *OccupancyHandler) GetPalace(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out palaceView
	err = h.Store.ViewTenant(ns, func(ds *model.TenantDataset) error {
		p := ds.FindPalace(id)
		if p == nil {
			return engine.ErrNotFound
		}
		out = palaceView{Palace: p, Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ReplacePalace handles PUT /v1/palaces/:id. The payload is a full
// palace subtree; the stored subtree is swapped wholesale, normalized and
// returned with fresh statistics.
func (h *OccupancyHandler) ReplacePalace(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body model.Palace
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ns := namespaceFrom(c)
	var out palaceView
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		p, err := h.Engine.ReplacePalace(ds, id, &body)
		if err != nil {
			return err
		}
		out = palaceView{Palace: p.Clone(), Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeletePalace handles DELETE /v1/palaces/:id.
func (h *OccupancyHandler) DeletePalace(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		return h.Engine.DeletePalace(ds, id)
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFloor handles POST /v1/palaces/:id/floors.
func (h *OccupancyHandler) AddFloor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out palaceView
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		if _, err := h.Engine.AddFloor(ds, id); err != nil {
			return err
		}
		p := ds.FindPalace(id)
		out = palaceView{Palace: p.Clone(), Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// RemoveFloor handles DELETE /v1/palaces/:id/floors/:floorId. The last
// floor of a palace cannot be removed.
func (h *OccupancyHandler) RemoveFloor(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	floorID, err := parseID(c.Param("floorId"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out palaceView
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		if err := h.Engine.RemoveFloor(ds, id, floorID); err != nil {
			return err
		}
		p := ds.FindPalace(id)
		out = palaceView{Palace: p.Clone(), Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AddApartment handles POST /v1/palaces/:id/floors/:floorId/apartments.
func (h *OccupancyHandler) AddApartment(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	floorID, err := parseID(c.Param("floorId"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ns := namespaceFrom(c)
	var out palaceView
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		if _, err := h.Engine.AddApartment(ds, id, floorID, body.Name); err != nil {
			return err
		}
		p := ds.FindPalace(id)
		out = palaceView{Palace: p.Clone(), Stats: h.Engine.Stats(p)}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// RemoveApartment handles DELETE /v1/apartments/:id. The last apartment
// of a floor cannot be removed.
func (h *OccupancyHandler) RemoveApartment(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		return h.Engine.RemoveApartment(ds, id)
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddRoom handles POST /v1/apartments/:id/rooms.
func (h *OccupancyHandler) AddRoom(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	var body struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity" validate:"required,gte=1,lte=10"`
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
		r, err := h.Engine.AddRoom(ds, id, body.Name, body.Capacity)
		if err != nil {
			return err
		}
		out = r.Clone()
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// RemoveRoom handles DELETE /v1/rooms/:id. The last room of an apartment
// cannot be removed.
func (h *OccupancyHandler) RemoveRoom(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		return h.Engine.RemoveRoom(ds, id)
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
