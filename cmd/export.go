package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/fetcher"
	"github.com/courtline/matchdata/internal/model"
)

var (
	exportCSVPath string
	exportOutPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a typed match CSV as a generic frame CSV",
	Long:  "Reads a match CSV produced by scrape and re-emits it as a plain frame in canonical column order, validating every row on the way through.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := fetcher.ReadMatches(exportCSVPath)
		if err != nil {
			return eris.Wrap(err, "export")
		}

		frame := model.MatchFrame(rows)
		if err := fetcher.WriteFrame(exportOutPath, frame); err != nil {
			return eris.Wrap(err, "export")
		}
		zap.L().Info("exported frame csv",
			zap.String("path", exportOutPath),
			zap.Int("rows", frame.Len()),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "path to match CSV file (required)")
	exportCmd.Flags().StringVar(&exportOutPath, "out", "", "output frame CSV path (required)")
	_ = exportCmd.MarkFlagRequired("csv")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
