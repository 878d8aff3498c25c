package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/roomdesk/palace-occupancy/internal/config"
	"github.com/roomdesk/palace-occupancy/internal/handler"
	"github.com/roomdesk/palace-occupancy/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Login lives under
// /v1/auth and needs no token; /v1/me echoes the caller's identity and is
// protected.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.ResolveNamespace())
	me.GET("/me", a.Me)
}

// RegisterOccupancy registers every occupancy endpoint. All routes
// require a valid access token; the tenant namespace each request acts
// on is resolved from the token's claims and the optional override
// header before any handler runs. Rate limiting and response caching are
// applied per resolved namespace; both degrade to pass-throughs when rdb
// is nil.
func RegisterOccupancy(e *echo.Echo, h *handler.OccupancyHandler, jwtSecret string, rdb *redis.Client, rl config.RateLimitConfig, cc config.CacheConfig) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.ResolveNamespace())
	v1.Use(middleware.RequireRole(middleware.RoleSuperAdmin, middleware.RoleManager))
	v1.Use(middleware.NewTokenBucket(rl, rdb))

	// Reads go through the short-TTL response cache.
	cached := middleware.NewRedisCache(cc, rdb)

	// Palace structure.
	v1.GET("/palaces", h.ListPalaces, cached)
	v1.POST("/palaces", h.CreatePalace)
	v1.GET("/palaces/:id", h.GetPalace, cached)
	v1.PUT("/palaces/:id", h.ReplacePalace)
	v1.DELETE("/palaces/:id", h.DeletePalace)
	v1.GET("/palaces/:id/stats", h.GetPalaceStats, cached)
	v1.POST("/palaces/:id/floors", h.AddFloor)
	v1.DELETE("/palaces/:id/floors/:floorId", h.RemoveFloor)
	v1.POST("/palaces/:id/floors/:floorId/apartments", h.AddApartment)
	v1.DELETE("/apartments/:id", h.RemoveApartment)
	v1.POST("/apartments/:id/rooms", h.AddRoom)
	v1.DELETE("/rooms/:id", h.RemoveRoom)

	// Apartment lifecycle.
	v1.PUT("/apartments/:id/status", h.SetApartmentStatus)

	// Assignments and room state.
	v1.PUT("/rooms/:id/assignments", h.AssignRoom)
	v1.DELETE("/rooms/:id/assignments/:collaboratorId", h.UnassignRoom)
	v1.POST("/assignments/move", h.MoveCollaborator)
	v1.PUT("/rooms/:id/status", h.SetRoomStatus)

	// Pre-checkin.
	v1.PUT("/rooms/:id/precheckin", h.SetPreCheckin)
	v1.DELETE("/rooms/:id/precheckin", h.ClearPreCheckin)

	// Collaborator directory copy and movement history.
	v1.GET("/collaborators", h.ListCollaborators, cached)
	v1.POST("/collaborators", h.UpsertCollaborator)
	v1.DELETE("/collaborators/:id", h.DeactivateCollaborator)
	v1.GET("/movements", h.ListMovements)

	// Tenant administration is restricted to super-administrators.
	admin := e.Group("/v1/tenants")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.ResolveNamespace())
	admin.Use(middleware.RequireRole(middleware.RoleSuperAdmin))
	admin.GET("", h.ListTenants)
	admin.POST("", h.RegisterTenant)
	admin.POST("/:namespace/snapshot", h.SnapshotTenant)
	admin.POST("/:namespace/restore", h.RestoreTenant)
	admin.GET("/:namespace/snapshots", h.SnapshotHistory)
}
