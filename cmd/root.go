package cmd

import (
	"fmt"
	"os"

	"pgtadash/internal/config"
	"pgtadash/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgtadash",
	Short: "PGT-A screening dashboard over a spreadsheet of hospital records",
	Long: `pgtadash loads a spreadsheet of PGT-A embryo-screening records and serves an
interactive dashboard: filtering by hospital and location, summary metrics,
descriptive statistics, correlation analysis and CSV export.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadEnv)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		logging.Default.Debug("no .env file found, using system environment variables")
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}
