package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/fetcher"
	"github.com/courtline/matchdata/internal/flashscore"
	"github.com/courtline/matchdata/internal/model"
)

var (
	scrapeURL    string
	scrapeSeason string
	scrapeState  string
	scrapeLeague string
	scrapeCSV    string
	scrapeSave   bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape match results from a live score results page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		season, err := model.ParseSeason(scrapeSeason)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}

		settle := time.Duration(cfg.Flashscore.SettleDelaySecs) * time.Second
		session, err := flashscore.Open(ctx, scrapeURL, flashscore.SessionOptions{
			Headless:   cfg.Flashscore.Headless,
			LoadSettle: settle,
		})
		if err != nil {
			return eris.Wrap(err, "scrape")
		}
		defer session.Close()

		started := time.Now().UTC()
		pipe := flashscore.New(flashscore.Config{
			ExpandTimeout: time.Duration(cfg.Flashscore.ExpandTimeoutSecs) * time.Second,
			SettleDelay:   settle,
		})
		rows, err := pipe.Run(ctx, session.Page(), season, scrapeState, scrapeLeague)
		if err != nil {
			return eris.Wrapf(err, "scrape %s", scrapeURL)
		}
		zap.L().Debug("scrape: pipeline finished",
			zap.Duration("elapsed", time.Since(started)),
			zap.String("url", scrapeURL),
		)

		if scrapeCSV != "" {
			if err := fetcher.WriteMatches(scrapeCSV, rows); err != nil {
				return eris.Wrap(err, "scrape")
			}
			zap.L().Info("wrote matches csv", zap.String("path", scrapeCSV), zap.Int("rows", len(rows)))
		}
		if scrapeSave {
			acq := model.Acquisition{
				Source:    model.SourceFlashscore,
				State:     scrapeState,
				League:    scrapeLeague,
				Season:    season.Label,
				StartedAt: started,
			}
			if err := persistRows(ctx, rows, acq); err != nil {
				return eris.Wrap(err, "scrape")
			}
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "", "results page URL (required)")
	scrapeCmd.Flags().StringVar(&scrapeSeason, "season", "", `season label "yyyy-yyyy" (required)`)
	scrapeCmd.Flags().StringVar(&scrapeState, "state", "", "state/country label attached to every row")
	scrapeCmd.Flags().StringVar(&scrapeLeague, "league", "", "league label attached to every row")
	scrapeCmd.Flags().StringVar(&scrapeCSV, "csv", "", "write scraped rows to this CSV file")
	scrapeCmd.Flags().BoolVar(&scrapeSave, "save", false, "persist scraped rows to the configured store")
	_ = scrapeCmd.MarkFlagRequired("url")
	_ = scrapeCmd.MarkFlagRequired("season")
	rootCmd.AddCommand(scrapeCmd)
}
