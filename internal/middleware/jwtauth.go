package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brandonscollins/familymoney/internal/auth"
	"github.com/brandonscollins/familymoney/internal/config"
	"github.com/brandonscollins/familymoney/internal/identity"
)

// JWTAuth returns a middleware that requires a valid access token and checks
// token version before letting the request through.
func JWTAuth(cfg config.Config, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, ok := verifyBearer(c, cfg, repo)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "invalid or missing token")
		}
		c.Locals("member_id", memberID)
		return c.Next()
	}
}

// OptionalJWT resolves the caller's member identity when a valid token is
// present and otherwise lets the request through as a guest. Downstream
// handlers see an empty member_id for guests.
func OptionalJWT(cfg config.Config, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if memberID, ok := verifyBearer(c, cfg, repo); ok {
			c.Locals("member_id", memberID)
		}
		return c.Next()
	}
}

func verifyBearer(c *fiber.Ctx, cfg config.Config, repo identity.Repository) (string, bool) {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return "", false
	}
	tokenStr := strings.TrimSpace(authz[len("Bearer "):])
	claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.JWTSecret))
	if err != nil {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	verFloat, _ := claims["ver"].(float64)
	ver := int(verFloat)

	member, err := repo.FindByID(c.UserContext(), sub)
	if err != nil || member.TokenVersion != ver {
		return "", false
	}
	return sub, true
}
