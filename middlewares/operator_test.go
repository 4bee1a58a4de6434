package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOperatorApp() *fiber.App {
	app := fiber.New()
	app.Use(Metrics(), RequestLogger())
	app.Get("/whoami", OperatorAuth("s3cret"), func(c *fiber.Ctx) error {
		return c.SendString(Operator(c))
	})
	return app
}

func TestOperatorKeyIsStable(t *testing.T) {
	assert.Equal(t, OperatorKey("s3cret", "mya"), OperatorKey("s3cret", "mya"))
	assert.NotEqual(t, OperatorKey("s3cret", "mya"), OperatorKey("s3cret", "thant"))
	assert.NotEqual(t, OperatorKey("s3cret", "mya"), OperatorKey("other", "mya"))
	assert.Len(t, OperatorKey("s3cret", "mya"), 64)
}

func TestOperatorAuth(t *testing.T) {
	tests := []struct {
		name     string
		operator string
		key      string
		status   int
	}{
		{"valid", "mya", OperatorKey("s3cret", "mya"), fiber.StatusOK},
		{"missing", "", "", fiber.StatusUnauthorized},
		{"wrong key", "mya", OperatorKey("s3cret", "thant"), fiber.StatusUnauthorized},
		{"wrong secret", "mya", OperatorKey("guess", "mya"), fiber.StatusUnauthorized},
	}

	app := newOperatorApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.operator != "" {
				req.Header.Set(HeaderOperator, tt.operator)
				req.Header.Set(HeaderOperatorKey, tt.key)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
