package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Manudd25/WorkCompass/internal/applications"
	"github.com/Manudd25/WorkCompass/internal/auth"
	"github.com/Manudd25/WorkCompass/internal/candidates"
	apphttp "github.com/Manudd25/WorkCompass/internal/http"
	"github.com/Manudd25/WorkCompass/internal/mail"
	"github.com/Manudd25/WorkCompass/internal/policy"
	"github.com/Manudd25/WorkCompass/internal/reports"
	"github.com/Manudd25/WorkCompass/internal/router"
	"github.com/Manudd25/WorkCompass/internal/users"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	tokens := &auth.Tokens{Secret: mustJWTSecret()}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	production := strings.EqualFold(os.Getenv("ENV"), "production")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			} else if !production {
				// Surface the detail outside production to help debugging.
				message = err.Error()
			}

			if code == fiber.StatusInternalServerError {
				log.Printf("%s %s: %v", c.Method(), c.Path(), err)
				if production {
					message = "internal server error"
				}
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("WorkCompass API is running...")
	})

	userRepo := users.NewRepository(pool)
	appRepo := applications.NewRepository(pool)
	engine := policy.NewEngine(userRepo)
	mailer := mail.NewFromEnv()
	google := &auth.GoogleVerifier{ClientID: os.Getenv("GOOGLE_CLIENT_ID")}

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			Repo:   userRepo,
			Tokens: tokens,
			Google: google,
			Mailer: mailer,
		},
		FeedbackHandler:   &apphttp.FeedbackHandler{Mailer: mailer},
		UsersHandler:      users.NewHandler(userRepo),
		CandidatesHandler: candidates.NewHandler(userRepo, engine),
		AppsHandler:       applications.NewHandler(appRepo, engine),
		ReportsHandler:    reports.NewHandler(appRepo, engine),
		AuthMW:            auth.Middleware(tokens, pool),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Listening on port", port)
	log.Fatal(app.Listen(":" + port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		// The error handler has not run yet, so a failed request still has
		// the default status on the response; derive it from the error.
		status := resolveStatus(c.Response().StatusCode(), err)
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}

func resolveStatus(responseCode int, err error) int {
	if err == nil {
		return responseCode
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// mustJWTSecret loads JWT_SECRET from the environment or exits the process
// with a fatal log.
func mustJWTSecret() []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	return []byte(secret)
}
