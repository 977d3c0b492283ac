package cmd

import (
	"context"

	"pgtadash/internal/dataset"
	"pgtadash/internal/logging"
	"pgtadash/ui"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logging.Default
		data := dataset.NewService(cfg.Data, log)

		// A missing or malformed spreadsheet is a fatal startup error; no
		// partial dashboard is served.
		if _, err := data.Load(context.Background()); err != nil {
			return err
		}

		server, err := ui.NewServer(cfg, data)
		if err != nil {
			return err
		}
		return server.Start(":" + cfg.Server.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
