package cmd

import (
	"context"
	"os"
	"path/filepath"

	"pgtadash/internal/analysis"
	"pgtadash/internal/dataset"
	"pgtadash/internal/export"
	"pgtadash/internal/logging"

	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportLocations []string
	exportHospitals []string
	exportQuery     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered data and its statistics as CSV files",
	Long: `Loads the configured spreadsheet, applies the given filters, and writes
filtered_pgt_data.csv and statistics.csv into the output directory. Omitting
--location or --hospital selects every distinct value, matching the dashboard
defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := logging.Default
		data := dataset.NewService(cfg.Data, log)
		full, err := data.Load(context.Background())
		if err != nil {
			return err
		}

		locations := exportLocations
		if !cmd.Flags().Changed("location") {
			locations = dataset.DistinctValues(full, dataset.ColLocation)
		}
		hospitals := exportHospitals
		if !cmd.Flags().Changed("hospital") {
			hospitals = dataset.DistinctValues(full, dataset.ColHospital)
		}

		filtered := dataset.Filter(full, locations, hospitals)
		result := dataset.Search(filtered, exportQuery)
		log.Info("[export] %d of %d rows selected", result.Len(), full.Len())

		if err := os.MkdirAll(exportOut, 0o755); err != nil {
			return err
		}

		body, err := export.CSVBytes(result)
		if err != nil {
			return err
		}
		dataPath := filepath.Join(exportOut, export.FilteredFileName)
		if err := os.WriteFile(dataPath, body, 0o644); err != nil {
			return err
		}

		report, err := analysis.Describe(filtered, dataset.StatColumns)
		if err != nil {
			return err
		}
		stats, err := export.DescribeCSVBytes(report)
		if err != nil {
			return err
		}
		statsPath := filepath.Join(exportOut, export.StatisticsFileName)
		if err := os.WriteFile(statsPath, stats, 0o644); err != nil {
			return err
		}

		log.Info("[export] wrote %s and %s", dataPath, statsPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory for the CSV files")
	exportCmd.Flags().StringSliceVar(&exportLocations, "location", nil, "hospital locations to keep (repeatable)")
	exportCmd.Flags().StringSliceVar(&exportHospitals, "hospital", nil, "hospitals to keep (repeatable)")
	exportCmd.Flags().StringVar(&exportQuery, "query", "", "free-text search applied to the data export")
	rootCmd.AddCommand(exportCmd)
}
