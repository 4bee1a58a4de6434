package invoices

import (
	"github.com/gofiber/fiber/v2"

	"payoutdesk/helpers"
	"payoutdesk/services"
)

type Handler struct {
	svc *services.Service
}

func New(svc *services.Service) *Handler {
	return &Handler{svc: svc}
}

type CreateInvoiceRequest struct {
	TransactionID uint `json:"transaction_id"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.TransactionID == 0 {
		return helpers.JSONError(c, "TRANSACTION_ID_REQUIRED")
	}

	invoice, err := h.svc.CreateInvoice(c.UserContext(), req.TransactionID)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_CREATE_INVOICE")
	}
	return helpers.JSONCreated(c, "Invoice generated successfully", invoice)
}

func (h *Handler) List(c *fiber.Ctx) error {
	clientID, ok := helpers.QueryID(c, "client_id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	invoices, err := h.svc.ListInvoices(c.UserContext(), clientID)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_LIST_INVOICES")
	}
	return helpers.JSONSuccess(c, "Invoices retrieved successfully", invoices)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_INVOICE_ID")
	}

	invoice, err := h.svc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_GET_INVOICE")
	}
	return helpers.JSONSuccess(c, "Invoice retrieved successfully", invoice)
}

// Preview returns the document content as structured blocks.
func (h *Handler) Preview(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_INVOICE_ID")
	}

	view, err := h.svc.Preview(c.UserContext(), id)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_PREVIEW_INVOICE")
	}
	return helpers.JSONSuccess(c, "Invoice preview generated", view)
}

// Download renders the invoice in the given format and sends it as an
// attachment named after the invoice number.
func (h *Handler) Download(format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := helpers.ParamID(c, "id")
		if !ok {
			return helpers.JSONError(c, "INVALID_INVOICE_ID")
		}

		doc, err := h.svc.Export(c.UserContext(), id, format)
		if err != nil {
			return helpers.ServiceError(c, err, "FAILED_TO_RENDER_INVOICE")
		}

		c.Attachment(doc.Name)
		c.Set(fiber.HeaderContentType, doc.ContentType)
		return c.Status(fiber.StatusOK).Send(doc.Data)
	}
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_INVOICE_ID")
	}

	if err := h.svc.DeleteInvoice(c.UserContext(), id); err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_DELETE_INVOICE")
	}
	return helpers.JSONSuccess(c, "Invoice deleted successfully", nil)
}
