package main

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolveStatus(t *testing.T) {
	if got := resolveStatus(fiber.StatusCreated, nil); got != fiber.StatusCreated {
		t.Fatalf("success status = %d, want 201", got)
	}
	// Handler errors are logged with the code the error handler will emit,
	// not the pre-error 200 still sitting on the response.
	if got := resolveStatus(fiber.StatusOK, fiber.NewError(fiber.StatusNotFound, "nope")); got != fiber.StatusNotFound {
		t.Fatalf("fiber error status = %d, want 404", got)
	}
	if got := resolveStatus(fiber.StatusOK, errors.New("boom")); got != fiber.StatusInternalServerError {
		t.Fatalf("plain error status = %d, want 500", got)
	}
}
