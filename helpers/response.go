package helpers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"payoutdesk/render"
	"payoutdesk/services"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return JSONErrorStatus(c, fiber.StatusBadRequest, message, nil)
}

func JSONErrorStatus(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    data,
	})
}

var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrClientNotFound, fiber.StatusNotFound, "CLIENT_NOT_FOUND"},
	{services.ErrTransactionNotFound, fiber.StatusNotFound, "TRANSACTION_NOT_FOUND"},
	{services.ErrInvoiceNotFound, fiber.StatusNotFound, "INVOICE_NOT_FOUND"},
	{services.ErrAlreadyInvoiced, fiber.StatusConflict, "TRANSACTION_ALREADY_INVOICED"},
	{services.ErrClientHasTransactions, fiber.StatusConflict, "CLIENT_HAS_TRANSACTIONS"},
	{services.ErrNumberAllocation, fiber.StatusServiceUnavailable, "INVOICE_NUMBER_UNAVAILABLE"},
	{render.ErrUnknownFormat, fiber.StatusBadRequest, "UNKNOWN_FORMAT"},
	{render.ErrRender, fiber.StatusInternalServerError, "RENDER_FAILED"},
}

// ErrorStatus maps a service error onto an HTTP status and response code.
// Errors it does not recognise map to 500 with an empty code.
func ErrorStatus(err error) (int, string) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, "VALIDATION_FAILED"
	}
	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return fiber.StatusInternalServerError, ""
}

// ServiceError writes err using the status ErrorStatus picks, or fallback
// for storage and other unexpected failures. Validation errors carry the
// rejected field in data.
func ServiceError(c *fiber.Ctx, err error, fallback string) error {
	status, code := ErrorStatus(err)
	if code == "" {
		code = fallback
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return JSONErrorStatus(c, status, code, fiber.Map{
			"field": verr.Field,
			"error": verr.Message,
		})
	}
	return JSONErrorStatus(c, status, code, nil)
}

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// QueryID reads an optional numeric query parameter; absent means 0.
func QueryID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
