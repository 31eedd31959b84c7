package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/api/dto"
	"github.com/spec-kit/helpdesk-api/internal/service"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

// UsersHandler exposes the user directory.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserSummaryResponses(users))
}

// Store handles POST /user/store.
func (h *UsersHandler) Store(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Level:    req.Level,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.DataResponse{
		Success: true,
		Message: "User created successfully!",
		Data:    dto.NewUserResponse(user),
	})
}

// Show handles GET /user/show/:id.
func (h *UsersHandler) Show(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Show(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "User found", Data: dto.NewUserResponse(user)})
}

// Update handles PATCH /user/update/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Level:    req.Level,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "User updated successfully!", Data: dto.NewUserResponse(user)})
}

// Destroy handles DELETE /user/destroy/:id.
func (h *UsersHandler) Destroy(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User deleted successfully!"})
}

// userID treats a non-numeric id like an unknown one.
func userID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("User")
	}
	return int64(id), nil
}
