package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/middleware"
	"github.com/roomdesk/palace-occupancy/internal/model"
	"github.com/roomdesk/palace-occupancy/internal/repository"
	"github.com/roomdesk/palace-occupancy/internal/store"
)

// OccupancyHandler bundles the core dependencies for every occupancy
// endpoint: the tenant store, the engine and the optional snapshot
// archive (nil when the database is unavailable).
type OccupancyHandler struct {
	Store     *store.Store
	Engine    *engine.Engine
	Snapshots *repository.SnapshotRepo
}

// NewOccupancyHandler constructs an OccupancyHandler and panics if a
// required dependency is missing. Snapshots may be nil.
func NewOccupancyHandler(s *store.Store, e *engine.Engine, snapshots *repository.SnapshotRepo) *OccupancyHandler {
	if s == nil || e == nil {
		panic("nil dependency passed to NewOccupancyHandler")
	}
	return &OccupancyHandler{Store: s, Engine: e, Snapshots: snapshots}
}

// Validator adapts go-playground/validator to Echo's Validator interface
// so handlers can call c.Validate on bound request bodies.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// namespaceFrom reads the tenant namespace resolved by the middleware
// chain. Routes registered without ResolveNamespace fall back to the
// default namespace.
func namespaceFrom(c echo.Context) string {
	if ns, ok := c.Get(middleware.CtxNamespace).(string); ok && ns != "" {
		return ns
	}
	return store.DefaultNamespace
}

// parseID converts a path or body identifier into a model.ID, reporting
// malformed values as engine validation errors so errJSON maps them to
// 400.
func parseID(raw string) (model.ID, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		return model.ID{}, engine.ErrValidation
	}
	return id, nil
}

// errJSON maps a core error to its HTTP status and a human-readable
// message. Unknown errors become opaque 500s so implementation details
// never leak to clients.
func errJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrValidation), errors.Is(err, model.ErrBadID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, repository.ErrSnapshotNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrCapacity),
		errors.Is(err, engine.ErrDestinationFull),
		errors.Is(err, engine.ErrStructural),
		errors.Is(err, engine.ErrOutOfService),
		errors.Is(err, store.ErrTenantExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrTenantIsolation):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tenant context could not be resolved"})
	default:
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
