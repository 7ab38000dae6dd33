package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	apperr "github.com/shadowofcards/go-formvalidator/errors"
	"github.com/shadowofcards/go-formvalidator/form"
)

var ErrInvalidBody = apperr.New().
	WithHTTPStatus(http.StatusBadRequest).
	WithCode(apperr.CodeInvalidBody).
	WithMessage("invalid json body")

func GetBody(c fiber.Ctx, v any) error {
	if err := c.Bind().JSON(v); err != nil {
		return ErrInvalidBody.WithError(err)
	}
	return nil
}

// BindAndValidate decodes the JSON body into a map and validates it with fv.
// The decoded body is returned only when validation passes.
func BindAndValidate(c fiber.Ctx, fv *form.Validator, mappings form.Mappings) (map[string]any, error) {
	body := map[string]any{}
	if err := GetBody(c, &body); err != nil {
		return nil, err
	}
	if err := fv.Validate(c.Context(), body, mappings); err != nil {
		return nil, err
	}
	return body, nil
}

// BindStructAndValidate decodes the JSON body into out, then validates out's
// exported fields with fv.
func BindStructAndValidate(c fiber.Ctx, fv *form.Validator, out any, mappings form.Mappings) error {
	if err := GetBody(c, out); err != nil {
		return err
	}
	return fv.Validate(c.Context(), out, mappings)
}
