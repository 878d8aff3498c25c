package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/palace-occupancy/internal/store"
)

func resolveWith(t *testing.T, role, claimedNS, header string) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(NamespaceHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}
	if claimedNS != "" {
		c.Set(CtxNamespace, claimedNS)
	}

	var got string
	h := ResolveNamespace()(func(c echo.Context) error {
		got, _ = c.Get(CtxNamespace).(string)
		return nil
	})
	require.NoError(t, h(c))
	return got
}

func TestResolveNamespacePrecedence(t *testing.T) {
	// Super-administrators may point at any namespace.
	assert.Equal(t, "hotel-b", resolveWith(t, RoleSuperAdmin, "hotel-a", "hotel-b"))

	// Managers are pinned to their credential's namespace.
	assert.Equal(t, "hotel-a", resolveWith(t, RoleManager, "hotel-a", "hotel-b"))

	// A redundant header matching the credential is fine for anyone.
	assert.Equal(t, "hotel-a", resolveWith(t, RoleManager, "hotel-a", "hotel-a"))

	// No header: the credential's namespace wins.
	assert.Equal(t, "hotel-a", resolveWith(t, RoleManager, "hotel-a", ""))

	// No namespace claim at all resolves to the default namespace.
	assert.Equal(t, store.DefaultNamespace, resolveWith(t, RoleManager, "", ""))
	assert.Equal(t, store.DefaultNamespace, resolveWith(t, "", "", "hotel-b"))
}
