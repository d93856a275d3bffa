package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/db"
	"kwtaxonomy/internal/keywords"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonInvalidRecord returns a 400 naming the offending record.
func jsonInvalidRecord(c fiber.Ctx, invalid *keywords.InvalidRecordError) error {
	body := fiber.Map{
		"status": "error",
		"error":  invalid.Error(),
		"index":  invalid.Index,
	}
	if invalid.ID != nil {
		body["id"] = *invalid.ID
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// handleError maps domain errors to HTTP responses.
func handleError(c fiber.Ctx, err error, fallback string) error {
	var invalid *keywords.InvalidRecordError
	switch {
	case errors.As(err, &invalid):
		return jsonInvalidRecord(c, invalid)
	case errors.Is(err, db.ErrProjectNotFound):
		return jsonError(c, fiber.StatusNotFound, "project not found")
	case errors.Is(err, db.ErrUnavailable):
		return jsonError(c, fiber.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return jsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
