package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manudd25/WorkCompass/internal/policy"
)

const actorKey = "actor"

// Middleware authenticates Bearer session tokens and attaches the resolved
// actor to the request. The user row is loaded fresh on every request so a
// deleted account stops authenticating immediately.
func Middleware(tokens *Tokens, pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := tokens.Verify(parts[1], PurposeSession)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		var (
			role   string
			email  string
			tenant *string
		)
		err = pool.QueryRow(
			c.UserContext(),
			`SELECT role, email, recruiter_company FROM users WHERE id = $1`,
			claims.UserID,
		).Scan(&role, &email, &tenant)
		if err != nil {
			return actorLoadError(err)
		}

		actor := policy.Actor{ID: claims.UserID, Role: role, Email: email}
		if tenant != nil {
			actor.TenantKey = *tenant
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// actorLoadError maps a failed user lookup: only a genuinely missing row is
// an authentication failure, anything else is a server-side error.
func actorLoadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load user")
}

// ActorFrom returns the actor attached by Middleware.
func ActorFrom(c *fiber.Ctx) (policy.Actor, bool) {
	actor, ok := c.Locals(actorKey).(policy.Actor)
	return actor, ok
}
