package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"payoutdesk/config"
	"payoutdesk/database"
	"payoutdesk/logger"
	"payoutdesk/render"
	"payoutdesk/render/pdf"
	"payoutdesk/services"

	_ "payoutdesk/render/raster"
)

var version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "payoutdesk",
	Short: "Commission and payout back-office",
	Long: `PayoutDesk records creator clients and their incoming payments,
computes commission and payout amounts, and issues numbered invoices
that can be downloaded as PDF or JPEG documents.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(loaded.GetLoggerConfig()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded

		render.Register("pdf", pdf.New(cfg.PDFCompress))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func brand(cfg *config.Config) render.Brand {
	return render.Brand{
		Name:    cfg.BrandName,
		Domain:  cfg.BrandDomain,
		Contact: cfg.BrandContact,
	}
}

// newService connects the configured database and wires the service on top.
func newService() (*services.Service, error) {
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}

	numbers, err := database.NewAllocator(cfg, database.DB)
	if err != nil {
		return nil, err
	}
	return services.New(database.DB, numbers, brand(cfg)), nil
}
