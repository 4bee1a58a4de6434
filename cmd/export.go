package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"payoutdesk/logger"
	"payoutdesk/render"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <invoice-number>",
	Short: "Render a stored invoice to a file",
	Example: `  # Write INV-000042.pdf into the current directory
  payoutdesk export INV-000042

  # Write the JPEG version into ./out
  payoutdesk export INV-000042 --format jpg --out ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", fmt.Sprintf("document format %v", render.Formats()))
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	svc, err := newService()
	if err != nil {
		return err
	}

	doc, err := svc.ExportTo(cmd.Context(), args[0], exportFormat, render.DirSink(exportOut))
	if err != nil {
		return err
	}

	path := filepath.Join(exportOut, doc.Name)
	log.Info().Str("path", path).Int("bytes", len(doc.Data)).Msg("Invoice exported")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
