package transactions

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

func (h *Handler) Create(c *fiber.Ctx) error {
	var req services.TransactionInput
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.ClientID == 0 {
		return helpers.JSONError(c, "CLIENT_ID_REQUIRED")
	}

	tx, err := h.svc.CreateTransaction(c.UserContext(), req)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_CREATE_TRANSACTION")
	}
	return helpers.JSONCreated(c, "Transaction recorded successfully", tx)
}

// List accepts an optional client_id filter.
func (h *Handler) List(c *fiber.Ctx) error {
	clientID, ok := helpers.QueryID(c, "client_id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	txs, err := h.svc.ListTransactions(c.UserContext(), clientID)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_LIST_TRANSACTIONS")
	}
	return helpers.JSONSuccess(c, "Transactions retrieved successfully", txs)
}

// Eligible lists the transactions an invoice can still be generated for.
func (h *Handler) Eligible(c *fiber.Ctx) error {
	clientID, ok := helpers.QueryID(c, "client_id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	txs, err := h.svc.EligibleTransactions(c.UserContext(), clientID)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_LIST_TRANSACTIONS")
	}
	return helpers.JSONSuccess(c, "Eligible transactions retrieved successfully", txs)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_TRANSACTION_ID")
	}

	tx, err := h.svc.GetTransaction(c.UserContext(), id)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_GET_TRANSACTION")
	}
	return helpers.JSONSuccess(c, "Transaction retrieved successfully", tx)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_TRANSACTION_ID")
	}

	if err := h.svc.DeleteTransaction(c.UserContext(), id); err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_DELETE_TRANSACTION")
	}
	return helpers.JSONSuccess(c, "Transaction deleted successfully", nil)
}
