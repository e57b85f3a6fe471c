package auth

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func TestActorLoadErrorMissingRow(t *testing.T) {
	err := actorLoadError(pgx.ErrNoRows)
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) || fiberErr.Code != fiber.StatusUnauthorized {
		t.Fatalf("missing row did not map to 401: %v", err)
	}
}

func TestActorLoadErrorDatabaseFailure(t *testing.T) {
	err := actorLoadError(errors.New("connection refused"))
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) || fiberErr.Code != fiber.StatusInternalServerError {
		t.Fatalf("database failure did not map to 500: %v", err)
	}
}
