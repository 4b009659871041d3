package middleware

import (
	"strings"

	"shopsync/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Local keys under which the gate stores the caller identity for handlers.
const (
	LocalClaims    = "claims"
	LocalSubjectID = "subject_id"
)

// Gate is the authorization gate applied to mutating routes. The server is
// parameterized by a Gate so the real and auth-skipped variants share one set
// of route handlers.
type Gate interface {
	// Authenticated verifies the bearer token and stores the caller identity
	// in the request locals. Rejects with 401.
	Authenticated() fiber.Handler
	// AdminOnly requires the admin capability on the authenticated caller,
	// consulting the persisted custom claims as a fallback. Rejects with 403.
	AdminOnly() fiber.Handler
}

// AuthGate enforces bearer-token authentication and the admin capability.
type AuthGate struct {
	authService *services.AuthService
}

// NewAuthGate creates a new AuthGate.
func NewAuthGate(authService *services.AuthService) *AuthGate {
	return &AuthGate{
		authService: authService,
	}
}

// Authenticated extracts and verifies the bearer token. It short-circuits
// before any store access when the header is missing or misshapen.
func (g *AuthGate) Authenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token",
			})
		}

		claims, err := g.authService.VerifyToken(parts[1])
		if err != nil {
			// VerifyToken already collapsed the failure reason.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalSubjectID, claims.SubjectID)
		return c.Next()
	}
}

// AdminOnly admits callers whose token asserts the admin capability, or whose
// persisted custom claims do. Lookup failures reject rather than surfacing
// provider errors.
func (g *AuthGate) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(LocalClaims).(*services.TokenClaims)
		if !ok || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		if claims.Admin {
			return c.Next()
		}

		custom, err := g.authService.FetchCustomClaims(claims.SubjectID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin check failed",
			})
		}
		if custom.Admin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin only",
		})
	}
}

// AllowAllGate admits every request with a synthetic admin identity. It is the
// local development gate; never use it in production.
type AllowAllGate struct{}

// NewAllowAllGate creates a new AllowAllGate.
func NewAllowAllGate() *AllowAllGate {
	return &AllowAllGate{}
}

// Authenticated injects a synthetic local identity.
func (g *AllowAllGate) Authenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := &services.TokenClaims{SubjectID: "local-dev", Admin: true}
		c.Locals(LocalClaims, claims)
		c.Locals(LocalSubjectID, claims.SubjectID)
		return c.Next()
	}
}

// AdminOnly admits everyone.
func (g *AllowAllGate) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
