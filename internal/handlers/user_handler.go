package handlers

import (
	"dailydiet/internal/middleware"
	"dailydiet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user registration.
type UserHandler struct {
	userService *services.UserService
	sessions    *middleware.SessionIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, sessions *middleware.SessionIssuer) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegister)
}

// HandleRegister stores a new user and issues the session cookie. The same
// identifier becomes the user's ID and the cookie value.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterUserInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	userID, fresh := h.sessions.Identify(c)
	if _, err := h.userService.Register(c.UserContext(), services.NewSession(userID), req); err != nil {
		return respondError(c, err)
	}

	if fresh {
		h.sessions.SetCookie(c, userID)
	}
	return c.SendStatus(fiber.StatusCreated)
}
