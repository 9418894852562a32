package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/fetcher"
)

var (
	importCSVPath string
	importOutPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load an arbitrary CSV file into a frame and report its shape",
	RunE: func(cmd *cobra.Command, _ []string) error {
		frame, err := fetcher.ReadFrame(importCSVPath)
		if err != nil {
			return eris.Wrap(err, "import")
		}
		zap.L().Info("imported frame",
			zap.String("path", importCSVPath),
			zap.Strings("columns", frame.Columns),
			zap.Int("rows", frame.Len()),
		)

		if importOutPath != "" {
			if err := fetcher.WriteFrame(importOutPath, frame); err != nil {
				return eris.Wrap(err, "import")
			}
			zap.L().Info("wrote normalized csv", zap.String("path", importOutPath))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to CSV file (required)")
	importCmd.Flags().StringVar(&importOutPath, "out", "", "write a normalized copy of the frame to this path")
	_ = importCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(importCmd)
}
