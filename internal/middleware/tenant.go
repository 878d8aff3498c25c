package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/store"
)

// NamespaceHeader is the request-level namespace override. It is honored
// only for super-administrators, or when it merely repeats the namespace
// already embedded in the caller's credential.
const NamespaceHeader = "X-Tenant-Namespace"

// RoleSuperAdmin may act on any tenant namespace. All other roles stay
// inside the namespace of their credential.
const RoleSuperAdmin = "SUPERADMIN"

// RoleManager manages the structures of a single tenant.
const RoleManager = "MANAGER"

// ResolveNamespace decides which tenant namespace the request operates
// on and stores the result under CtxNamespace, replacing the raw claim.
//
// Precedence: the override header wins when the caller is a
// super-administrator or when it matches the credential's own namespace;
// otherwise the credential's namespace wins; a caller with no namespace
// claim at all resolves to the default namespace. It must run after
// JWTAuth on authenticated routes.
func ResolveNamespace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claimed, _ := c.Get(CtxNamespace).(string)
			claimed = strings.TrimSpace(claimed)
			role, _ := c.Get(CtxRole).(string)

			ns := claimed
			if ns == "" {
				ns = store.DefaultNamespace
			}
			if override := strings.TrimSpace(c.Request().Header.Get(NamespaceHeader)); override != "" {
				if role == RoleSuperAdmin || override == claimed {
					ns = override
				}
			}
			c.Set(CtxNamespace, ns)
			return next(c)
		}
	}
}
