package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", NewJwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		id, err := UserIdFromCtx(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", id.String()))
	})
	app.Get("/fail/:kind", func(ctx *fiber.Ctx) error {
		switch ctx.Params("kind") {
		case "notfound":
			return NewNotFoundError("lesson plan not found")
		case "wrapped":
			return fmt.Errorf("lookup: %w", ErrForbidden)
		default:
			return errors.New("db exploded")
		}
	})
	return app
}

func decode(t *testing.T, res *http.Response) BaseResponse[any] {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp("secret")
	userId := uuid.New()
	valid, err := GenerateToken("secret", userId, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("secret", userId, -time.Hour)
	require.NoError(t, err)
	foreign, err := GenerateToken("other", userId, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)

			if tt.status == http.StatusOK {
				assert.Equal(t, userId.String(), decode(t, res).Data)
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := newTestApp("secret")

	tests := []struct {
		kind    string
		status  int
		message string
	}{
		{kind: "notfound", status: http.StatusNotFound, message: "lesson plan not found"},
		{kind: "wrapped", status: http.StatusForbidden, message: "lookup: forbidden"},
		{kind: "other", status: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail/"+tt.kind, nil))
			require.NoError(t, err)

			assert.Equal(t, tt.status, res.StatusCode)
			body := decode(t, res)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Title  string `validate:"required"`
		Status string `validate:"omitempty,oneof=draft outline"`
	}

	assert.NoError(t, ValidateRequest(req{Title: "x"}))

	err := ValidateRequest(req{Status: "bogus"})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "Title is required")
	assert.Contains(t, appErr.Message, "Status must be one of [draft outline]")
}
