package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"payoutdesk/config"
	"payoutdesk/controllers/clients"
	"payoutdesk/controllers/invoices"
	"payoutdesk/controllers/transactions"
	"payoutdesk/helpers"
	"payoutdesk/middlewares"
	"payoutdesk/render"
	"payoutdesk/services"
)

func Setup(app *fiber.App, svc *services.Service, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, " + middlewares.HeaderOperator + ", " + middlewares.HeaderOperatorKey,
	}))
	app.Use(middlewares.Metrics())
	app.Use(middlewares.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return helpers.JSONSuccess(c, "OK", fiber.Map{
			"formats": render.Formats(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", middlewares.OperatorAuth(cfg.OperatorSecret))

	clientHandler := clients.New(svc)
	clientroutes := api.Group("/clients")
	clientroutes.Post("/", clientHandler.Create)
	clientroutes.Get("/", clientHandler.List)
	clientroutes.Get("/:id", clientHandler.Get)
	clientroutes.Put("/:id", clientHandler.Update)
	clientroutes.Delete("/:id", clientHandler.Delete)

	txHandler := transactions.New(svc)
	txroutes := api.Group("/transactions")
	txroutes.Post("/", txHandler.Create)
	txroutes.Get("/", txHandler.List)
	txroutes.Get("/eligible", txHandler.Eligible)
	txroutes.Get("/:id", txHandler.Get)
	txroutes.Delete("/:id", txHandler.Delete)

	invoiceHandler := invoices.New(svc)
	invoiceroutes := api.Group("/invoices")
	invoiceroutes.Post("/", invoiceHandler.Create)
	invoiceroutes.Get("/", invoiceHandler.List)
	invoiceroutes.Get("/:id", invoiceHandler.Get)
	invoiceroutes.Get("/:id/preview", invoiceHandler.Preview)
	invoiceroutes.Get("/:id/pdf", invoiceHandler.Download("pdf"))
	invoiceroutes.Get("/:id/jpg", invoiceHandler.Download("jpg"))
	invoiceroutes.Delete("/:id", invoiceHandler.Delete)
}
