package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// StatusFor maps a submission error to its HTTP status.
func StatusFor(err error) int {
	var (
		unsupported  *services.UnsupportedFileTypeError
		extraction   *services.ExtractionError
		insufficient *services.InsufficientTextError
		unavailable  *services.BackendUnavailableError
		remote       *services.RemoteAnalysisError
	)

	switch {
	case errors.As(err, &unsupported):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.As(err, &insufficient), errors.As(err, &extraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrSubmissionInProgress), errors.Is(err, services.ErrSessionReset):
		return fiber.StatusConflict
	case errors.As(err, &unavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &remote):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrUnknownMode):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	return c.Status(code).JSON(models.ErrorResponse{
		Error: services.UserMessage(err),
		Code:  code,
	})
}
