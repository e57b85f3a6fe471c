package applications

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
)

type Handler struct {
	Repo   *Repository
	Policy *policy.Engine
}

func NewHandler(repo *Repository, engine *policy.Engine) *Handler {
	return &Handler{Repo: repo, Policy: engine}
}

type createRequest struct {
	Company     string  `json:"company"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	Date        *string `json:"date"` // RFC 3339 or YYYY-MM-DD
	Notes       *string `json:"notes"`
	CandidateID string  `json:"candidate_id"`
}

type updateRequest struct {
	Company           *string `json:"company"`
	Role              *string `json:"role"`
	Status            *string `json:"status"`
	Date              *string `json:"date"`
	Notes             *string `json:"notes"`
	InterviewTime     *string `json:"interview_time"`
	InterviewDate     *string `json:"interview_date"`
	InterviewLocation *string `json:"interview_location"`
	InterviewType     *string `json:"interview_type"`
	InterviewNotes    *string `json:"interview_notes"`
}

// Create records a new application. Candidates create for themselves; a
// recruiter must name a candidate, who is tenant-checked by the policy
// engine before the row is written.
func (h *Handler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Company = strings.TrimSpace(body.Company)
	body.Role = strings.TrimSpace(body.Role)
	if body.Company == "" || body.Role == "" {
		return fiber.NewError(fiber.StatusBadRequest, "company and role are required")
	}

	status := body.Status
	if status == "" {
		status = domain.StatusApplied
	}
	if !domain.ValidStatus(status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	var appliedOn *time.Time
	if body.Date != nil && *body.Date != "" {
		parsed, err := parseDate(*body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date")
		}
		appliedOn = &parsed
	}

	if actor.IsRecruiter() && body.CandidateID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "candidate_id is required when creating as a recruiter")
	}
	requested := requestedFor(actor, body.CandidateID)
	if err := validCandidateID(requested); err != nil {
		return err
	}

	scope, err := h.Policy.ApplicationScope(userContext(c), actor, requested)
	if err != nil {
		return scopeError(err)
	}

	na := NewApplication{
		Company:   body.Company,
		Role:      body.Role,
		Status:    status,
		AppliedOn: appliedOn,
		Notes:     body.Notes,
		// The scope pins the owner: the actor itself for candidates, the
		// tenant-checked candidate for recruiters.
		CandidateID: scope.OwnerID,
	}
	if actor.IsRecruiter() {
		tenant := actor.TenantKey
		na.RecruiterCompany = &tenant
	}

	created, err := h.Repo.Create(userContext(c), na)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create application")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// List returns the applications visible to the actor, optionally narrowed to
// one candidate via ?candidate_id= (recruiters only; candidates are always
// pinned to their own rows regardless).
func (h *Handler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requested := requestedFor(actor, c.Query("candidate_id"))
	if err := validCandidateID(requested); err != nil {
		return err
	}
	scope, err := h.Policy.ApplicationScope(userContext(c), actor, requested)
	if err != nil {
		return scopeError(err)
	}

	items, err := h.Repo.List(userContext(c), scope)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list applications")
	}
	return c.JSON(items)
}

// Update patches an application under the same scope that gates reads, so a
// foreign row is indistinguishable from a missing one.
func (h *Handler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := applicationID(c)
	if err != nil {
		return err
	}

	var body updateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if body.Status != nil && !domain.ValidStatus(*body.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}
	if body.InterviewType != nil && *body.InterviewType != "" && !domain.ValidInterviewType(*body.InterviewType) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid interview type")
	}

	patch := Patch{
		Company:           body.Company,
		Role:              body.Role,
		Status:            body.Status,
		Notes:             body.Notes,
		InterviewTime:     body.InterviewTime,
		InterviewLocation: body.InterviewLocation,
		InterviewType:     body.InterviewType,
		InterviewNotes:    body.InterviewNotes,
	}
	if body.Date != nil && *body.Date != "" {
		parsed, err := parseDate(*body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date")
		}
		patch.AppliedOn = &parsed
	}
	if body.InterviewDate != nil {
		if *body.InterviewDate == "" {
			patch.ClearInterviewDate = true
		} else {
			parsed, err := parseDate(*body.InterviewDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid interview date")
			}
			patch.InterviewDate = &parsed
		}
	}

	scope, err := h.Policy.ApplicationScope(userContext(c), actor, "")
	if err != nil {
		return scopeError(err)
	}

	updated, err := h.Repo.Update(userContext(c), id, scope, patch)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "application not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update application")
	}
	return c.JSON(updated)
}

// Delete removes an application under the same scope that gates reads.
func (h *Handler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := applicationID(c)
	if err != nil {
		return err
	}

	scope, err := h.Policy.ApplicationScope(userContext(c), actor, "")
	if err != nil {
		return scopeError(err)
	}

	err = h.Repo.Delete(userContext(c), id, scope)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "application not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete application")
	}
	return c.JSON(fiber.Map{"message": "application deleted"})
}

// requestedFor drops the candidate_id query parameter for candidate actors so
// a supplied foreign id cannot even reach the policy engine as a request.
func requestedFor(actor policy.Actor, requested string) string {
	if actor.IsCandidate() {
		return ""
	}
	return requested
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// validCandidateID rejects a supplied candidate id that is not a UUID before
// it can reach the tenant lookup and fail there as a database error.
func validCandidateID(requested string) error {
	if requested == "" {
		return nil
	}
	if _, err := uuid.Parse(requested); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid candidate id")
	}
	return nil
}

func applicationID(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid application id")
	}
	return raw, nil
}

func scopeError(err error) error {
	switch {
	case errors.Is(err, policy.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "not allowed for this candidate")
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
