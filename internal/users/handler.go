package users

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Manudd25/WorkCompass/internal/auth"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type updateProfileRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Location         *string `json:"location"`
	StrivingFor      *string `json:"striving_for"`
	RecruiterCompany *string `json:"recruiter_company"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Repo.GetByID(userContext(c), actor.ID)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(user)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body updateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := userContext(c)
	if body.Email != nil {
		taken, err := h.Repo.EmailExists(ctx, *body.Email, actor.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
		}
		if taken {
			return fiber.NewError(fiber.StatusConflict, "email already exists")
		}
	}

	updated, err := h.Repo.Update(ctx, actor.ID, Patch{
		Name:             body.Name,
		Email:            body.Email,
		Location:         body.Location,
		StrivingFor:      body.StrivingFor,
		RecruiterCompany: body.RecruiterCompany,
	})
	if errors.Is(err, ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	}
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(updated)
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body changePasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "current and new password required")
	}
	if len(body.NewPassword) < auth.MinPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "new password must be at least 6 characters long")
	}

	ctx := userContext(c)
	user, err := h.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to change password")
	}
	if !auth.CheckPassword(body.CurrentPassword, user.PasswordHash) {
		return fiber.NewError(fiber.StatusBadRequest, "current password is incorrect")
	}

	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to change password")
	}
	if err := h.Repo.SetPasswordHash(ctx, actor.ID, hash); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to change password")
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// DeleteAccount removes the actor and all applications it owns.
func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	err := h.Repo.Delete(userContext(c), actor.ID)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete account")
	}
	return c.JSON(fiber.Map{"message": "account deleted"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
