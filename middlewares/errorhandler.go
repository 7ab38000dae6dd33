package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	apperr "github.com/shadowofcards/go-formvalidator/errors"
	"github.com/shadowofcards/go-formvalidator/form"
	"github.com/shadowofcards/go-formvalidator/logging"
)

type errorPayload struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Context interface{} `json:"context,omitempty"`
}

// NewErrorHandler renders form validation failures as 422 responses with the
// field errors under context.errors. Unclassified errors are logged and
// answered with a generic 500.
func NewErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logging.Nop()
	}
	return func(c fiber.Ctx, err error) error {
		if fve, ok := form.AsValidationError(err); ok {
			return respondApp(c, fve.AppError())
		}

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			ctx := make(map[string]string, len(ve))
			for _, f := range ve {
				ctx[f.Field()] = "validation failed on '" + f.Tag() + "'"
			}
			return respond(c, http.StatusBadRequest, errorPayload{
				Code:    apperr.CodeValidationFailed,
				Message: "validation failed",
				Context: ctx,
			})
		}

		if ae, ok := apperr.FromError(err); ok {
			return respondApp(c, ae)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := strings.ReplaceAll(strings.ToUpper(http.StatusText(fe.Code)), " ", "_")
			return respond(c, fe.Code, errorPayload{
				Code:    code,
				Message: fe.Message,
			})
		}

		log.ErrorCtx(c.Context(), "unhandled error", zap.Error(err))
		return respond(c, http.StatusInternalServerError, errorPayload{
			Code:    apperr.CodeInternal,
			Message: "internal server error",
		})
	}
}

func respondApp(c fiber.Ctx, ae *apperr.AppError) error {
	payload := errorPayload{
		Code:    ae.ErrCode(),
		Message: ae.Message,
	}
	if len(ae.Context) > 0 {
		payload.Context = ae.Context
	}
	return respond(c, ae.Status(), payload)
}

func respond(c fiber.Ctx, status int, p errorPayload) error {
	return c.Status(status).JSON(fiber.Map{"error": p})
}
