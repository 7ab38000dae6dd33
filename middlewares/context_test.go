package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowofcards/go-formvalidator/contexts"
)

func echoContext() *fiber.App {
	app := fiber.New()
	app.Use(RequestContext(), FormName("signup"))
	app.Get("/", func(c fiber.Ctx) error {
		rid, _ := c.Context().Value(contexts.KeyRequestID).(string)
		name, _ := c.Context().Value(contexts.KeyForm).(string)
		return c.SendString(rid + "|" + name)
	})
	return app
}

func TestRequestContext(t *testing.T) {
	t.Run("propagates header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "req-42")

		resp, err := echoContext().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "req-42|signup", string(raw))
		assert.Equal(t, "req-42", resp.Header.Get(HeaderRequestID))
	})

	t.Run("generates id", func(t *testing.T) {
		resp, err := echoContext().Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		rid := resp.Header.Get(HeaderRequestID)
		assert.NotEmpty(t, rid)
		assert.Equal(t, rid+"|signup", string(raw))
	})
}
