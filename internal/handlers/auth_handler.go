package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/models"
	"github.com/ABeGood/klim-fit/internal/services"
	"github.com/ABeGood/klim-fit/pkg/utils"
)

type authApplicationService interface {
	RegisterUser(ctx context.Context, input services.RegisterInput) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAdmin(ctx context.Context, id int64) (*models.Admin, error)
	ChangeUserPassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	ChangeAdminPassword(ctx context.Context, adminID int64, currentPassword, newPassword string) error
}

type AuthHandler struct {
	service   authApplicationService
	jwtSecret string
}

func NewAuthHandler(service *services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Name            string   `json:"name"`
	Surname         string   `json:"surname"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Age             *int     `json:"age"`
	WeightKG        *float64 `json:"weight_kg"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if req.Password != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Passwords do not match"})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	user, err := h.service.RegisterUser(c.Context(), services.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		WeightKG: req.WeightKG,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), "user", h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.FullName(),
			"role":  "user",
		},
	})
}

// Login checks the admins table first, then users, mirroring the
// original sign-in order. Both misses answer the same way.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := h.service.AuthenticateAdmin(c.Context(), email, req.Password)
	if err == nil {
		return h.issueToken(c, admin.ID, "admin", admin.Email, admin.FullName())
	}
	if !errors.Is(err, services.ErrInvalidCredentials) {
		return mapServiceError(c, err)
	}

	user, err := h.service.AuthenticateUser(c.Context(), email, req.Password)
	if err != nil {
		return mapServiceError(c, err)
	}
	return h.issueToken(c, user.ID, "user", user.Email, user.FullName())
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, id int64, role, email, name string) error {
	token, err := utils.GenerateToken(strconv.FormatInt(id, 10), role, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    id,
			"email": email,
			"name":  name,
			"role":  role,
		},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if actor.Role == "admin" {
		admin, err := h.service.GetAdmin(c.Context(), actor.ID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"user": admin, "role": "admin"})
	}

	user, err := h.service.GetUser(c.Context(), actor.ID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "role": "user"})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New passwords do not match"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	if actor.Role == "admin" {
		err = h.service.ChangeAdminPassword(c.Context(), actor.ID, req.CurrentPassword, req.NewPassword)
	} else {
		err = h.service.ChangeUserPassword(c.Context(), actor.ID, req.CurrentPassword, req.NewPassword)
	}
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Current password is incorrect"})
		}
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
