package middleware

import (
	"go-assetreport/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer token and injects org context. The
// report pipeline treats a missing organization as a fatal config error, so
// every report route runs behind this.
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev
			dummyClaims := &utils.OrgClaims{
				UserID: "dev-admin-id",
				OrgID:  "dev-org",
			}
			c.Locals(utils.OrgClaimsKey, dummyClaims)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(authHeader[7:])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(utils.OrgClaimsKey, claims)
		return c.Next()
	}
}

// OrgID pulls the organization id injected by AuthMiddleware; empty when
// auth never ran.
func OrgID(c *fiber.Ctx) string {
	if claims, ok := c.Locals(utils.OrgClaimsKey).(*utils.OrgClaims); ok {
		return claims.OrgID
	}
	return ""
}
