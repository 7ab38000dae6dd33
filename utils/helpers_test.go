package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/shadowofcards/go-formvalidator/errors"
	"github.com/shadowofcards/go-formvalidator/form"
	"github.com/shadowofcards/go-formvalidator/middlewares"
	"github.com/shadowofcards/go-formvalidator/validation"
)

type signupRequest struct {
	Email string `json:"email" form:"email"`
	Age   int    `json:"age" form:"age"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	engine, err := validation.New()
	require.NoError(t, err)
	provider := form.Static{RuleSet: form.Rules{
		"email": "required,email",
		"age":   "required,gte={minAge}",
	}}

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.NewErrorHandler(nil)})
	app.Post("/map", func(c fiber.Ctx) error {
		body, err := BindAndValidate(c, form.New(engine, provider), form.Mappings{"minAge": 18})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(body)
	})
	app.Post("/struct", func(c fiber.Ctx) error {
		var req signupRequest
		if err := BindStructAndValidate(c, form.New(engine, provider), &req, form.Mappings{"minAge": 18}); err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(req)
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestBindAndValidate(t *testing.T) {
	app := newApp(t)

	t.Run("valid", func(t *testing.T) {
		status, out := post(t, app, "/map", `{"email":"bob@example.com","age":30}`)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "bob@example.com", out["email"])
	})

	t.Run("invalid", func(t *testing.T) {
		status, out := post(t, app, "/map", `{"email":"bob@example.com","age":17}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		e := out["error"].(map[string]interface{})
		assert.Equal(t, apperr.CodeValidationFailed, e["code"])
		errs := e["context"].(map[string]interface{})["errors"].(map[string]interface{})
		assert.Equal(t, []interface{}{"validation failed on 'gte'"}, errs["age"])
		assert.NotContains(t, errs, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		status, out := post(t, app, "/map", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperr.CodeInvalidBody, out["error"].(map[string]interface{})["code"])
	})
}

func TestBindStructAndValidate(t *testing.T) {
	app := newApp(t)

	status, out := post(t, app, "/struct", `{"email":"bob@example.com","age":30}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(30), out["age"])

	status, _ = post(t, app, "/struct", `{"email":"nope","age":30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
