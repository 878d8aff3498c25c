package handler // handler package contains tenant administration handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/model"
)

// snapshotRetention is how long archived snapshots are kept.
const snapshotRetention = 30 * 24 * time.Hour

func marshalDataset(ds *model.TenantDataset) ([]byte, error) {
	return json.Marshal(ds)
}

// ListTenants handles GET /v1/tenants (super-administrators only).
func (h *OccupancyHandler) ListTenants(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"namespaces": h.Store.Namespaces()})
}

// RegisterTenant handles POST /v1/tenants. The new namespace's dataset is
// cloned from the default tenant's, which lets an operator stage a
// template structure once and stamp it out per hotel.
func (h *OccupancyHandler) RegisterTenant(c echo.Context) error {
	var body struct {
		Namespace string `json:"namespace" validate:"required,min=2,max=64"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if err := h.Store.Register(body.Namespace); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"namespace": body.Namespace})
}

// SnapshotTenant handles POST /v1/tenants/:namespace/snapshot. The
// namespace's full dataset is serialized and archived; without a
// database connection the snapshot is still returned inline so operators
// can save it manually.
func (h *OccupancyHandler) SnapshotTenant(c echo.Context) error {
	ns := c.Param("namespace")
	payload, err := h.Store.Snapshot(ns)
	if err != nil {
		return errJSON(c, err)
	}
	takenAt := time.Now().UTC()
	archived := false
	if h.Snapshots != nil {
		if err := h.Snapshots.Save(c.Request().Context(), ns, takenAt, payload); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not archive snapshot"})
		}
		archived = true
		// Old archive rows are dropped opportunistically on each save.
		if _, err := h.Snapshots.Prune(c.Request().Context(), ns, snapshotRetention); err != nil {
			log.Printf("snapshot prune failed for %s: %v", ns, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"namespace": ns,
		"taken_at":  takenAt,
		"archived":  archived,
		"bytes":     len(payload),
	})
}

// RestoreTenant handles POST /v1/tenants/:namespace/restore. With an
// empty body the latest archived snapshot is loaded; otherwise the body
// itself is treated as the dataset payload.
func (h *OccupancyHandler) RestoreTenant(c echo.Context) error {
	ns := c.Param("namespace")
	var body struct {
		Dataset *model.TenantDataset `json:"dataset"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var payload []byte
	if body.Dataset != nil {
		b, err := marshalDataset(body.Dataset)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dataset payload"})
		}
		payload = b
	} else {
		if h.Snapshots == nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "snapshot archive unavailable"})
		}
		b, _, err := h.Snapshots.Latest(c.Request().Context(), ns)
		if err != nil {
			return errJSON(c, err)
		}
		payload = b
	}
	if err := h.Store.Restore(ns, h.Engine, payload); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"namespace": ns, "restored": true})
}

// SnapshotHistory handles GET /v1/tenants/:namespace/snapshots.
func (h *OccupancyHandler) SnapshotHistory(c echo.Context) error {
	if h.Snapshots == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "snapshot archive unavailable"})
	}
	ns := c.Param("namespace")
	metas, err := h.Snapshots.History(c.Request().Context(), ns, 20)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list snapshots"})
	}
	return c.JSON(http.StatusOK, metas)
}
