package http

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Manudd25/WorkCompass/internal/auth"
	"github.com/Manudd25/WorkCompass/internal/mail"
)

// FeedbackHandler relays feedback from authenticated users to the inbox
// named by FEEDBACK_TO.
type FeedbackHandler struct {
	Mailer *mail.Mailer
}

type feedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *FeedbackHandler) Send(c *fiber.Ctx) error {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var body feedbackRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	body.Subject = strings.TrimSpace(body.Subject)
	body.Message = strings.TrimSpace(body.Message)
	if body.Subject == "" || body.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "subject and message are required")
	}

	to := strings.TrimSpace(os.Getenv("FEEDBACK_TO"))
	if to == "" || h.Mailer == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "feedback not configured")
	}

	// Fire and forget; the sender gets an immediate ack.
	go func() {
		if err := h.Mailer.SendFeedback(to, actor.Email, body.Subject, body.Message); err != nil {
			log.Printf("feedback mail failed: %v", err)
		}
	}()
	return c.JSON(fiber.Map{"message": "feedback sent"})
}
