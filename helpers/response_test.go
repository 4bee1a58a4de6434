package helpers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"payoutdesk/render"
	"payoutdesk/services"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrClientNotFound, fiber.StatusNotFound, "CLIENT_NOT_FOUND"},
		{services.ErrAlreadyInvoiced, fiber.StatusConflict, "TRANSACTION_ALREADY_INVOICED"},
		{fmt.Errorf("%w: timeout", services.ErrNumberAllocation), fiber.StatusServiceUnavailable, "INVOICE_NUMBER_UNAVAILABLE"},
		{fmt.Errorf("%w: %q", render.ErrUnknownFormat, "docx"), fiber.StatusBadRequest, "UNKNOWN_FORMAT"},
		{&services.ValidationError{Field: "name", Message: "is required"}, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{errors.New("boom"), fiber.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		status, code := ErrorStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
