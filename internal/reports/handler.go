package reports

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Manudd25/WorkCompass/internal/applications"
	"github.com/Manudd25/WorkCompass/internal/auth"
	"github.com/Manudd25/WorkCompass/internal/policy"
)

type Handler struct {
	Apps   *applications.Repository
	Policy *policy.Engine
}

func NewHandler(apps *applications.Repository, engine *policy.Engine) *Handler {
	return &Handler{Apps: apps, Policy: engine}
}

// Export streams the actor's scoped application list as an attachment,
// format=csv (default) or format=pdf. Recruiters may narrow to one candidate
// with candidate_id, subject to the same tenant check as listing.
func (h *Handler) Export(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	requested := c.Query("candidate_id")
	if actor.IsCandidate() {
		requested = ""
	}
	if requested != "" {
		if _, err := uuid.Parse(requested); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid candidate id")
		}
	}

	scope, err := h.Policy.ApplicationScope(c.UserContext(), actor, requested)
	switch {
	case errors.Is(err, policy.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "not allowed for this candidate")
	case errors.Is(err, policy.ErrNoTenant):
		return fiber.NewError(fiber.StatusBadRequest, "recruiter company not set")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	apps, err := h.Apps.List(c.UserContext(), scope)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export applications")
	}

	switch c.Query("format", "csv") {
	case "csv":
		out, err := RenderCSV(apps)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render export")
		}
		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", `attachment; filename="applications.csv"`)
		return c.Send(out)
	case "pdf":
		out, err := RenderPDF(apps, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render export")
		}
		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", `attachment; filename="applications.pdf"`)
		return c.Send(out)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be csv or pdf")
	}
}
