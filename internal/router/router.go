package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Manudd25/WorkCompass/internal/applications"
	"github.com/Manudd25/WorkCompass/internal/candidates"
	handlers "github.com/Manudd25/WorkCompass/internal/http"
	"github.com/Manudd25/WorkCompass/internal/reports"
	"github.com/Manudd25/WorkCompass/internal/users"
)

type Router struct {
	AuthHandler       *handlers.AuthHandler
	FeedbackHandler   *handlers.FeedbackHandler
	UsersHandler      *users.Handler
	CandidatesHandler *candidates.Handler
	AppsHandler       *applications.Handler
	ReportsHandler    *reports.Handler
	AuthMW            fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	// Public auth surface
	app.Post("/api/auth/signup", r.AuthHandler.Signup)
	app.Post("/api/auth/login", r.AuthHandler.Login)
	app.Post("/api/auth/google", r.AuthHandler.GoogleLogin)
	app.Post("/api/auth/forgot-password", r.AuthHandler.ForgotPassword)
	app.Post("/api/auth/reset-password", r.AuthHandler.ResetPassword)

	// Profile management
	app.Get("/api/auth/profile", r.AuthMW, r.UsersHandler.GetProfile)
	app.Put("/api/auth/profile", r.AuthMW, r.UsersHandler.UpdateProfile)
	app.Put("/api/auth/password", r.AuthMW, r.UsersHandler.ChangePassword)
	app.Delete("/api/auth/profile", r.AuthMW, r.UsersHandler.DeleteAccount)

	// Recruiter-only candidate management
	app.Post("/api/auth/candidates", r.AuthMW, r.CandidatesHandler.Create)
	app.Get("/api/auth/candidates", r.AuthMW, r.CandidatesHandler.List)
	app.Put("/api/auth/candidates/:id", r.AuthMW, r.CandidatesHandler.Update)
	app.Delete("/api/auth/candidates/:id", r.AuthMW, r.CandidatesHandler.Delete)

	// Applications
	app.Post("/api/applications", r.AuthMW, r.AppsHandler.Create)
	app.Get("/api/applications", r.AuthMW, r.AppsHandler.List)
	app.Get("/api/applications/export", r.AuthMW, r.ReportsHandler.Export)
	app.Put("/api/applications/:id", r.AuthMW, r.AppsHandler.Update)
	app.Delete("/api/applications/:id", r.AuthMW, r.AppsHandler.Delete)

	// Feedback
	app.Post("/api/feedback", r.AuthMW, r.FeedbackHandler.Send)
}
