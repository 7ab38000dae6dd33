package middlewares

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/xid"

	"github.com/shadowofcards/go-formvalidator/contexts"
)

const HeaderRequestID = "X-Request-Id"

// RequestContext stores the request id in the request context so form
// validation logs can be correlated with the request. A missing
// X-Request-Id header gets a generated id, echoed back in the response.
func RequestContext() fiber.Handler {
	return func(c fiber.Ctx) error {
		injectTrace(c)
		return c.Next()
	}
}

// FormName tags the request context with the form being handled.
func FormName(name string) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.SetContext(context.WithValue(c.Context(), contexts.KeyForm, name))
		return c.Next()
	}
}

func injectTrace(c fiber.Ctx) context.Context {
	rid := c.Get(HeaderRequestID)
	if rid == "" {
		rid = xid.New().String()
	}
	c.Set(HeaderRequestID, rid)
	ctx := context.WithValue(c.Context(), contexts.KeyRequestID, rid)
	c.SetContext(ctx)
	return ctx
}
