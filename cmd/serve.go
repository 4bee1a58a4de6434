package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"payoutdesk/logger"
	"payoutdesk/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("server")

	svc, err := newService()
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "payoutdesk " + version,
		DisableStartupMessage: true,
	})
	routes.Setup(app, svc, cfg)

	addr := cfg.Addr()
	log.Info().Str("addr", addr).Msg("Server running")

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-c:
	}

	log.Info().Msg("Gracefully shutting down")
	if err := app.Shutdown(); err != nil {
		return err
	}
	log.Info().Msg("Server exited cleanly")
	return nil
}
