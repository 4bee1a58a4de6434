package clients

import (
	"github.com/gofiber/fiber/v2"

	"payoutdesk/helpers"
	"payoutdesk/logger"
	"payoutdesk/middlewares"
	"payoutdesk/services"
)

type Handler struct {
	svc *services.Service
}

func New(svc *services.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req services.ClientInput
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	operator := middlewares.Operator(c)
	client, err := h.svc.CreateClient(c.UserContext(), operator, req)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_CREATE_CLIENT")
	}

	log := logger.WithOperator("clients", operator)
	log.Info().Uint("client_id", client.ID).Msg("Client registered")
	return helpers.JSONCreated(c, "Client created successfully", client)
}

func (h *Handler) List(c *fiber.Ctx) error {
	clients, err := h.svc.ListClients(c.UserContext())
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_LIST_CLIENTS")
	}
	return helpers.JSONSuccess(c, "Clients retrieved successfully", clients)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	client, err := h.svc.GetClient(c.UserContext(), id)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_GET_CLIENT")
	}
	return helpers.JSONSuccess(c, "Client retrieved successfully", client)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	var req services.ClientInput
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	client, err := h.svc.UpdateClient(c.UserContext(), id, req)
	if err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_UPDATE_CLIENT")
	}
	return helpers.JSONSuccess(c, "Client updated successfully", client)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	id, ok := helpers.ParamID(c, "id")
	if !ok {
		return helpers.JSONError(c, "INVALID_CLIENT_ID")
	}

	if err := h.svc.DeleteClient(c.UserContext(), id); err != nil {
		return helpers.ServiceError(c, err, "FAILED_TO_DELETE_CLIENT")
	}
	return helpers.JSONSuccess(c, "Client deleted successfully", nil)
}
