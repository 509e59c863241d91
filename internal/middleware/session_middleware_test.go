package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dailydiet/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer() *middleware.SessionIssuer {
	return middleware.NewSessionIssuer(middleware.SessionConfig{
		CookieName: "userId",
		Path:       "/meals",
		MaxAge:     7 * 24 * time.Hour,
	})
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionIssuer_IssuesFreshCookie(t *testing.T) {
	issuer := newIssuer()
	app := fiber.New()
	app.Post("/users", func(c *fiber.Ctx) error {
		id, fresh := issuer.Identify(c)
		assert.True(t, fresh)
		issuer.SetCookie(c, id)
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/users", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	cookie := findCookie(resp, "userId")
	require.NotNil(t, cookie)
	_, err = uuid.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "/meals", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestSessionIssuer_ReusesExistingCookie(t *testing.T) {
	issuer := newIssuer()
	existing := uuid.NewString()
	app := fiber.New()
	app.Post("/users", func(c *fiber.Ctx) error {
		id, fresh := issuer.Identify(c)
		assert.False(t, fresh)
		assert.Equal(t, existing, id)
		return c.SendString(id)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.AddCookie(&http.Cookie{Name: "userId", Value: existing})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Nil(t, findCookie(resp, "userId"))
}

func TestRequireSession(t *testing.T) {
	issuer := newIssuer()
	app := fiber.New()
	app.Get("/meals", issuer.RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(middleware.SessionFrom(c).UserID)
	})

	// Missing cookie
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/meals", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Cookie that is not a UUID
	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	req.AddCookie(&http.Cookie{Name: "userId", Value: "forged"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Valid cookie
	id := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/meals", nil)
	req.AddCookie(&http.Cookie{Name: "userId", Value: id})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, id, string(body))
	resp.Body.Close()
}

func TestSessionFrom_WithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Empty(t, middleware.SessionFrom(c).UserID)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestSession_CookieSpellings(t *testing.T) {
	issuer := newIssuer()
	id := uuid.NewString()
	app := fiber.New()
	app.Post("/users", func(c *fiber.Ctx) error {
		userID, fresh := issuer.Identify(c)
		if fresh {
			return c.SendString("fresh:" + userID)
		}
		return c.SendString(userID)
	})
	app.Get("/meals", issuer.RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(middleware.SessionFrom(c).UserID)
	})

	send := func(method, path, cookie string) (int, string) {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(&http.Cookie{Name: "userId", Value: cookie})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	// Uppercase is the same identity
	status, body := send(http.MethodGet, "/meals", strings.ToUpper(id))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body)
	_, body = send(http.MethodPost, "/users", strings.ToUpper(id))
	assert.Equal(t, id, body)

	// Other spellings are not sessions
	for _, cookie := range []string{"urn:uuid:" + id, "{" + id + "}", strings.ReplaceAll(id, "-", "")} {
		status, _ = send(http.MethodGet, "/meals", cookie)
		assert.Equal(t, http.StatusUnauthorized, status, cookie)

		_, body = send(http.MethodPost, "/users", cookie)
		require.True(t, strings.HasPrefix(body, "fresh:"), cookie)
		assert.Len(t, strings.TrimPrefix(body, "fresh:"), 36)
	}
}
