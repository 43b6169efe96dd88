package middleware

import (
	"strings"

	"resumehub/config"
	"resumehub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	UserIDHeader = "X-User-ID"
	UserIDQuery  = "userId"
	UserIDLocal  = "userID"
)

// Middleware trusts the user identity set by the upstream auth proxy.
type Middleware struct {
	Config config.Config
	log    logger.Logger
}

func New(config config.Config) Middleware {
	return Middleware{
		Config: config,
		log:    logger.New("middleware"),
	}
}

// RequireUser reads the user from the X-User-ID header, falling back to the
// userId query parameter for websocket upgrades where browsers cannot set
// headers.
func (m Middleware) RequireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserIDHeader))
	if userID == "" {
		userID = strings.TrimSpace(c.Query(UserIDQuery))
	}

	if userID == "" {
		m.log.Function("RequireUser").Debug("request without user", "path", c.Path())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	c.Locals(UserIDLocal, userID)
	return c.Next()
}

// UserID returns the user set by RequireUser.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDLocal).(string)
	return userID
}
