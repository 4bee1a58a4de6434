package middlewares

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"

	"payoutdesk/helpers"
)

const (
	HeaderOperator    = "X-Operator"
	HeaderOperatorKey = "X-Operator-Key"

	operatorLocal = "operator"
)

// OperatorKey is the key an operator presents: hex HMAC-SHA256 of the
// operator name under the shared secret.
func OperatorKey(secret, operator string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(operator))
	return hex.EncodeToString(h.Sum(nil))
}

func OperatorAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		operator := strings.TrimSpace(c.Get(HeaderOperator))
		key := strings.ToLower(strings.TrimSpace(c.Get(HeaderOperatorKey)))

		if operator == "" || key == "" {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "MISSING_OPERATOR_CREDENTIALS", nil)
		}

		expected := OperatorKey(secret, operator)
		if !hmac.Equal([]byte(key), []byte(expected)) {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_OPERATOR_KEY", nil)
		}

		c.Locals(operatorLocal, operator)
		return c.Next()
	}
}

// Operator returns the name OperatorAuth accepted for this request.
func Operator(c *fiber.Ctx) string {
	name, _ := c.Locals(operatorLocal).(string)
	return name
}
