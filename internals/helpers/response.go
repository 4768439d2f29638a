package helper

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error codes (stable, machine-checkable)
=================================*/

const (
	CodeValidation      = "VALIDATION"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidState    = "INVALID_STATE"
	CodePaymentRequired = "PAYMENT_REQUIRED"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError carries an HTTP status plus a stable error code so that two
// failures sharing a status (e.g. 400 VALIDATION vs 400 CONFLICT) stay
// distinguishable to API clients.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// ValidationError flattens validator.v10 field errors into one AppError.
func ValidationError(err error) *AppError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewError(fiber.StatusBadRequest, CodeValidation, "Invalid input")
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return NewError(fiber.StatusBadRequest, CodeValidation, "Validation failed: "+strings.Join(parts, ", "))
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	case fiber.StatusBadGateway:
		return CodeUpstreamFailure
	default:
		if status >= 500 {
			return CodeInternal
		}
		return "ERROR"
	}
}

// ErrorHandler is installed as the fiber app ErrorHandler; every error that
// escapes a handler ends up here and becomes a JSON body, never a crash.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae, ok := err.(*AppError); ok {
		return c.Status(ae.Status).JSON(fiber.Map{
			"success":    false,
			"message":    ae.Message,
			"error_code": ae.Code,
		})
	}
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{
			"success":    false,
			"message":    fe.Message,
			"error_code": statusToErrorCode(fe.Code),
		})
	}
	log.Printf("[ERROR] unhandled: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success":    false,
		"message":    "Internal server error",
		"error_code": CodeInternal,
	})
}

/* ===============================
   JSON responses (standard success)
=================================*/

func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JsonDeleted(c *fiber.Ctx, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "deleted"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// JsonList: paginated collection response.
func JsonList(c *fiber.Ctx, message string, data any, pagination Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}
