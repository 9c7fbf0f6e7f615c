package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/domain"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// RequireClient ensures a CLIENT is authenticated.
func RequireClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil || principal.User.Role != domain.RoleClient {
			return apperrors.NewForbidden("client account required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures a SUPERADMIN is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin() {
			return apperrors.NewForbidden("administrator account required")
		}
		return c.Next()
	}
}

// PermissionCheck selects one of the CLIENT permission flags.
type PermissionCheck func(domain.Permissions) bool

// RequirePermission gates an optional portal section for CLIENT users.
// Administrators pass unconditionally.
func RequirePermission(check PermissionCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.IsAdmin() {
			return c.Next()
		}
		if !check(principal.User.Permissions) {
			return apperrors.NewForbidden("section not enabled for this account")
		}
		return c.Next()
	}
}

// CanViewProjects permission selector.
func CanViewProjects(p domain.Permissions) bool { return p.CanViewProjects }

// CanViewAccount permission selector.
func CanViewAccount(p domain.Permissions) bool { return p.CanViewAccount }

// CanViewUsers permission selector.
func CanViewUsers(p domain.Permissions) bool { return p.CanViewUsers }
