package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/fetcher"
	"github.com/courtline/matchdata/internal/model"
)

var uploadCSVPath string

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a previously exported match CSV to the configured store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		started := time.Now().UTC()

		rows, err := fetcher.ReadMatches(uploadCSVPath)
		if err != nil {
			return eris.Wrap(err, "upload")
		}
		zap.L().Info("read matches csv", zap.String("path", uploadCSVPath), zap.Int("rows", len(rows)))

		acq := model.Acquisition{
			Source:    model.SourceCSV,
			StartedAt: started,
		}
		if len(rows) > 0 {
			acq.State = rows[0].State
			acq.League = rows[0].League
			acq.Season = rows[0].Season
		}
		if err := persistRows(ctx, rows, acq); err != nil {
			return eris.Wrap(err, "upload")
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadCSVPath, "csv", "", "path to match CSV file (required)")
	_ = uploadCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(uploadCmd)
}
