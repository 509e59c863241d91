package middleware

import (
	"log/slog"
	"time"

	"dailydiet/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionLocalsKey = "session"

// SessionConfig describes the session cookie.
type SessionConfig struct {
	CookieName string
	Path       string
	MaxAge     time.Duration
	Secure     bool
}

// SessionIssuer reads and issues the anonymous session cookie. There is no
// server-side session table: the cookie value is the caller's user ID.
type SessionIssuer struct {
	cfg SessionConfig
}

// NewSessionIssuer creates a new SessionIssuer.
func NewSessionIssuer(cfg SessionConfig) *SessionIssuer {
	return &SessionIssuer{cfg: cfg}
}

// Identify returns the caller's user ID in canonical form. A valid ID
// already carried by the request is reused; otherwise a fresh one is
// generated and fresh is true. Identify never writes to the response.
func (s *SessionIssuer) Identify(c *fiber.Ctx) (userID string, fresh bool) {
	if id, ok := services.CanonicalID(c.Cookies(s.cfg.CookieName)); ok {
		return id, false
	}
	return uuid.New().String(), true
}

// SetCookie instructs the client to store userID as its session cookie.
func (s *SessionIssuer) SetCookie(c *fiber.Ctx, userID string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    userID,
		Path:     s.cfg.Path,
		MaxAge:   int(s.cfg.MaxAge / time.Second),
		Expires:  time.Now().Add(s.cfg.MaxAge),
		Secure:   s.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RequireSession is a Fiber middleware that rejects requests without a
// valid session cookie and stores the Session for subsequent handlers.
func (s *SessionIssuer) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := services.CanonicalID(c.Cookies(s.cfg.CookieName))
		if !ok {
			slog.Debug("request without session", "method", c.Method(), "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(sessionLocalsKey, services.NewSession(id))
		return c.Next()
	}
}

// SessionFrom returns the Session stored by RequireSession, or the zero
// Session when there is none.
func SessionFrom(c *fiber.Ctx) services.Session {
	if sess, ok := c.Locals(sessionLocalsKey).(services.Session); ok {
		return sess
	}
	return services.Session{}
}
