package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// ListCollaborators handles GET /v1/collaborators. The optional
// ?active=true|false query parameter filters by the active flag.
func (h *OccupancyHandler) ListCollaborators(c echo.Context) error {
	ns := namespaceFrom(c)
	var filter *bool
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid active filter"})
		}
		filter = &v
	}
	var out []*model.Collaborator
	err := h.Store.ViewTenant(ns, func(ds *model.TenantDataset) error {
		out = make([]*model.Collaborator, 0, len(ds.Collaborators))
		for _, col := range ds.Collaborators {
			if filter != nil && col.Active != *filter {
				continue
			}
			out = append(out, col)
		}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UpsertCollaborator handles POST /v1/collaborators, synchronizing one
// record from the external directory into the tenant dataset.
func (h *OccupancyHandler) UpsertCollaborator(c echo.Context) error {
	var body struct {
		ID           string `json:"id"`
		Codigo       string `json:"codigo" validate:"required"`
		Nombre       string `json:"nombre" validate:"required"`
		Apellido     string `json:"apellido"`
		Departamento string `json:"departamento"`
		Posicion     string `json:"posicion"`
		Active       *bool  `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	var id model.ID
	if body.ID != "" {
		parsed, err := parseID(body.ID)
		if err != nil {
			return errJSON(c, err)
		}
		id = parsed
	}
	active := true
	if body.Active != nil {
		active = *body.Active
	}
	ns := namespaceFrom(c)
	var out model.Collaborator
	err := h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		col, err := h.Engine.UpsertCollaborator(ds, model.Collaborator{
			ID:           id,
			Codigo:       body.Codigo,
			Nombre:       body.Nombre,
			Apellido:     body.Apellido,
			Departamento: body.Departamento,
			Posicion:     body.Posicion,
			Active:       active,
		})
		if err != nil {
			return err
		}
		out = *col
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeactivateCollaborator handles DELETE /v1/collaborators/:id. The record
// is kept (rooms may still reference it) but can no longer receive new
// assignments.
func (h *OccupancyHandler) DeactivateCollaborator(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return errJSON(c, err)
	}
	ns := namespaceFrom(c)
	var out model.Collaborator
	err = h.Store.WithTenant(ns, func(ds *model.TenantDataset) error {
		col, err := h.Engine.DeactivateCollaborator(ds, id)
		if err != nil {
			return err
		}
		out = *col
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListMovements handles GET /v1/movements and returns the tenant's
// assignment history, newest first. The optional ?limit parameter caps
// the page size.
func (h *OccupancyHandler) ListMovements(c echo.Context) error {
	ns := namespaceFrom(c)
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}
	var out []model.MovementRecord
	err := h.Store.ViewTenant(ns, func(ds *model.TenantDataset) error {
		total := len(ds.CollaboratorMovements)
		n := limit
		if n > total {
			n = total
		}
		out = make([]model.MovementRecord, 0, n)
		for i := total - 1; i >= 0 && len(out) < n; i-- {
			out = append(out, ds.CollaboratorMovements[i])
		}
		return nil
	})
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
