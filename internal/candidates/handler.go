// Package candidates exposes the recruiter-only candidate management surface:
// tenant-scoped listing and mutation plus provisioning of passwordless
// accounts.
package candidates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Manudd25/WorkCompass/internal/auth"
	"github.com/Manudd25/WorkCompass/internal/domain"
	"github.com/Manudd25/WorkCompass/internal/policy"
	"github.com/Manudd25/WorkCompass/internal/users"
)

type Handler struct {
	Repo   *users.Repository
	Policy *policy.Engine
}

func NewHandler(repo *users.Repository, engine *policy.Engine) *Handler {
	return &Handler{Repo: repo, Policy: engine}
}

type provisionRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	JobTitle       *string `json:"job_title"`
	Experience     *string `json:"experience"`
	Skills         *string `json:"skills"`
	Location       *string `json:"location"`
	WishedSalary   *string `json:"wished_salary"`
	EarlyStartDate *string `json:"early_start_date"` // YYYY-MM-DD
	CandidateNotes *string `json:"candidate_notes"`
}

type updateCandidateRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	JobTitle       *string `json:"job_title"`
	Experience     *string `json:"experience"`
	Skills         *string `json:"skills"`
	Location       *string `json:"location"`
	WishedSalary   *string `json:"wished_salary"`
	EarlyStartDate *string `json:"early_start_date"` // YYYY-MM-DD; empty string clears
	CandidateNotes *string `json:"candidate_notes"`
	Company        *string `json:"company"`
}

// Create provisions a passwordless candidate account stamped with the
// recruiter's company on both tenant attributes. The account cannot log in
// via password until a reset flow sets one.
func (h *Handler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	scope, err := h.Policy.CandidateScope(actor)
	if err != nil {
		return scopeError(err)
	}

	var body provisionRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and email are required")
	}

	var startDate *time.Time
	if body.EarlyStartDate != nil && *body.EarlyStartDate != "" {
		parsed, err := time.Parse("2006-01-02", *body.EarlyStartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "early_start_date must be YYYY-MM-DD")
		}
		startDate = &parsed
	}

	ctx := userContext(c)
	taken, err := h.Repo.EmailExists(ctx, body.Email, "")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create candidate")
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	}

	provider := domain.ProviderRecruiterCreated
	tenant := scope.TenantKey
	created, err := h.Repo.Create(ctx, users.NewUser{
		Name:             body.Name,
		Email:            body.Email,
		Role:             domain.RoleCandidate,
		OAuthProvider:    &provider,
		JobTitle:         body.JobTitle,
		Experience:       body.Experience,
		Skills:           body.Skills,
		Location:         body.Location,
		WishedSalary:     body.WishedSalary,
		EarlyStartDate:   startDate,
		CandidateNotes:   body.CandidateNotes,
		Company:          &tenant,
		RecruiterCompany: &tenant,
	})
	if errors.Is(err, users.ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create candidate")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns the candidates of the recruiter's tenant.
func (h *Handler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	scope, err := h.Policy.CandidateScope(actor)
	if err != nil {
		return scopeError(err)
	}

	items, err := h.Repo.ListCandidates(userContext(c), scope)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list candidates")
	}
	return c.JSON(items)
}

// Update patches a candidate inside the recruiter's tenant. Out-of-tenant or
// unknown ids both report not found.
func (h *Handler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	scope, err := h.Policy.CandidateScope(actor)
	if err != nil {
		return scopeError(err)
	}

	id, err := candidateID(c)
	if err != nil {
		return err
	}

	var body updateCandidateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patch := users.Patch{
		Name:           body.Name,
		Email:          body.Email,
		JobTitle:       body.JobTitle,
		Experience:     body.Experience,
		Skills:         body.Skills,
		Location:       body.Location,
		WishedSalary:   body.WishedSalary,
		CandidateNotes: body.CandidateNotes,
		Company:        body.Company,
	}
	if body.EarlyStartDate != nil {
		if *body.EarlyStartDate == "" {
			patch.ClearStartDate = true
		} else {
			parsed, err := time.Parse("2006-01-02", *body.EarlyStartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "early_start_date must be YYYY-MM-DD")
			}
			patch.EarlyStartDate = &parsed
		}
	}

	ctx := userContext(c)
	if body.Email != nil {
		taken, err := h.Repo.EmailExists(ctx, *body.Email, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update candidate")
		}
		if taken {
			return fiber.NewError(fiber.StatusConflict, "email already exists")
		}
	}

	updated, err := h.Repo.UpdateCandidate(ctx, id, scope, patch)
	if errors.Is(err, users.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "candidate not found")
	}
	if errors.Is(err, users.ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update candidate")
	}
	return c.JSON(updated)
}

// Delete removes a candidate and cascades that candidate's applications.
func (h *Handler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	scope, err := h.Policy.CandidateScope(actor)
	if err != nil {
		return scopeError(err)
	}

	id, err := candidateID(c)
	if err != nil {
		return err
	}

	err = h.Repo.DeleteCandidate(userContext(c), id, scope)
	if errors.Is(err, users.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "candidate not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete candidate")
	}
	return c.JSON(fiber.Map{"message": "candidate deleted"})
}

func candidateID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid candidate id")
	}
	return raw, nil
}

func scopeError(err error) error {
	switch {
	case errors.Is(err, policy.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "only recruiters can manage candidates")
	case errors.Is(err, policy.ErrNoTenant):
		return fiber.NewError(fiber.StatusBadRequest, "recruiter company not set")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
