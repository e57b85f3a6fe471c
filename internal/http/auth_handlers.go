package http

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Manudd25/WorkCompass/internal/auth"
	"github.com/Manudd25/WorkCompass/internal/domain"
	"github.com/Manudd25/WorkCompass/internal/mail"
	"github.com/Manudd25/WorkCompass/internal/users"
)

// AuthHandler owns the unauthenticated surface: signup, login, Google OAuth
// and the password-reset flow.
type AuthHandler struct {
	Repo   *users.Repository
	Tokens *auth.Tokens
	Google *auth.GoogleVerifier
	Mailer *mail.Mailer
}

type signupRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	RecruiterCompany string `json:"recruiter_company"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	IDToken string `json:"id_token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, AvatarURL: u.AvatarURL}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "please fill in all required fields")
	}
	if len(body.Password) < auth.MinPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters long")
	}

	role := body.Role
	if role == "" {
		role = domain.RoleCandidate
	}
	if !domain.ValidRole(role) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}
	if role == domain.RoleRecruiter && strings.TrimSpace(body.RecruiterCompany) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "company is required for recruiters")
	}

	ctx := userContext(c)
	taken, err := h.Repo.EmailExists(ctx, body.Email, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error during signup")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error during signup")
	}

	nu := users.NewUser{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: &hash,
		Role:         role,
	}
	if role == domain.RoleRecruiter {
		company := strings.TrimSpace(body.RecruiterCompany)
		nu.RecruiterCompany = &company
	}

	created, err := h.Repo.Create(ctx, nu)
	if errors.Is(err, users.ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error during signup")
	}

	// Welcome mail is best-effort and must never block the response.
	if h.Mailer != nil {
		go func(email, name string) {
			if err := h.Mailer.SendWelcome(email, name); err != nil {
				log.Printf("welcome mail to %s failed: %v", email, err)
			}
		}(created.Email, created.Name)
	}

	token, err := h.Tokens.SignSession(created.ID, created.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message: "user registered successfully",
		Token:   token,
		User:    toUserResponse(created),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "please provide email and password")
	}

	user, err := h.Repo.GetByEmail(userContext(c), body.Email)
	if errors.Is(err, users.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error during login")
	}

	// OAuth and provisioned accounts have no hash and fall through to the
	// same message as a wrong password.
	if !auth.CheckPassword(body.Password, user.PasswordHash) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.Tokens.SignSession(user.ID, user.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.JSON(authResponse{
		Message: "login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// GoogleLogin verifies a frontend-supplied ID token and finds or creates the
// matching user. First logins become candidates; recruiters use the signup
// form so they can name a company.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var body googleRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.IDToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing Google id_token")
	}

	ctx := userContext(c)
	profile, err := h.Google.Verify(ctx, body.IDToken)
	if errors.Is(err, auth.ErrGoogleNotConfigured) {
		return fiber.NewError(fiber.StatusInternalServerError, "google auth not configured")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "google authentication failed")
	}

	user, err := h.Repo.GetByEmail(ctx, profile.Email)
	if errors.Is(err, users.ErrNotFound) {
		provider := "google"
		nu := users.NewUser{
			Name:          profile.Name,
			Email:         profile.Email,
			Role:          domain.RoleCandidate,
			OAuthProvider: &provider,
			OAuthID:       &profile.Subject,
		}
		if profile.AvatarURL != "" {
			nu.AvatarURL = &profile.AvatarURL
		}
		user, err = h.Repo.Create(ctx, nu)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error during google login")
	}

	token, err := h.Tokens.SignSession(user.ID, user.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}
	return c.JSON(authResponse{
		Message: "google login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// ForgotPassword responds identically whether or not the account exists, so
// the endpoint cannot be used to probe for registered addresses.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var body forgotPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(body.Email) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	const reply = "if an account with that email exists, a reset link has been sent"

	ctx := userContext(c)
	user, err := h.Repo.GetByEmail(ctx, body.Email)
	if errors.Is(err, users.ErrNotFound) {
		return c.JSON(fiber.Map{"message": reply})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	token, err := h.Tokens.SignPasswordReset(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}
	if err := h.Repo.SetResetToken(ctx, user.ID, token, time.Now().Add(auth.ResetTTL)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	if h.Mailer != nil {
		if err := h.Mailer.SendPasswordReset(user.Email, user.Name, token); err != nil {
			// Delivery failure must not change the reply.
			log.Printf("reset mail to %s failed: %v", user.Email, err)
		}
	}
	return c.JSON(fiber.Map{"message": reply})
}

// ResetPassword accepts only the outstanding, unexpired, reset-purpose token
// and clears it on success so it cannot be replayed.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var body resetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Token == "" || body.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token and new password are required")
	}
	if len(body.NewPassword) < auth.MinPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters long")
	}

	claims, err := h.Tokens.Verify(body.Token, auth.PurposePasswordReset)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired reset token")
	}

	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}

	err = h.Repo.ConsumeResetToken(userContext(c), claims.UserID, body.Token, hash)
	if errors.Is(err, users.ErrNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired reset token")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"message": "password has been reset"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
