package serverutils

import (
	"errors"

	"chapchap-be/pkg/match"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps pipeline error kinds onto HTTP statuses. Unknown errors are
// treated as store failures so clients retry rather than give up.
func statusFor(kind match.Kind) int {
	switch kind {
	case match.KindUpstreamModel:
		return fiber.StatusBadGateway
	case match.KindPrecondition:
		return fiber.StatusPreconditionFailed
	case match.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusServiceUnavailable
	}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Error:   "http_error",
				Message: fiberErr.Message,
			})
		}

		var matchErr *match.Error
		if errors.As(err, &matchErr) {
			return ctx.Status(statusFor(matchErr.Kind)).JSON(ErrorBody{
				Error:   string(matchErr.Kind),
				Message: matchErr.Msg,
			})
		}

		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorBody{
				Error:   "validation_error",
				Message: valErr.Error(),
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Error:   "internal_error",
			Message: "something went wrong",
		})
	}
}
