package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/fetcher"
	"github.com/courtline/matchdata/internal/statsapi"
)

var (
	statsFrom string
	statsTo   string
	statsCSV  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Pull league game logs from the stats API by date range",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		from, err := time.Parse("2006-01-02", statsFrom)
		if err != nil {
			return eris.Wrapf(err, "stats: parse --from %q", statsFrom)
		}
		to, err := time.Parse("2006-01-02", statsTo)
		if err != nil {
			return eris.Wrapf(err, "stats: parse --to %q", statsTo)
		}

		client := statsapi.NewClient(cfg.Stats)
		frame, err := client.GamesByDate(ctx, from, to)
		if err != nil {
			return eris.Wrap(err, "stats")
		}

		if err := fetcher.WriteFrame(statsCSV, frame); err != nil {
			return eris.Wrap(err, "stats")
		}
		zap.L().Info("wrote game log csv",
			zap.String("path", statsCSV),
			zap.Int("rows", frame.Len()),
		)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "start date yyyy-mm-dd (required)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "end date yyyy-mm-dd (required)")
	statsCmd.Flags().StringVar(&statsCSV, "csv", "", "output CSV path (required)")
	_ = statsCmd.MarkFlagRequired("from")
	_ = statsCmd.MarkFlagRequired("to")
	_ = statsCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(statsCmd)
}
