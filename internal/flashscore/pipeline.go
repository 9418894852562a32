package flashscore

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/courtline/matchdata/internal/model"
)

// Selectors on the results page. Two-line static entries carry the full
// per-quarter breakdown.
const (
	moreSelector  = ".event__more.event__more--static"
	matchSelector = ".event__match.event__match--static.event__match--twoLine"
)

// Config tunes the extraction run.
type Config struct {
	// ExpandTimeout bounds the wait for the "load more" control to
	// become clickable.
	ExpandTimeout time.Duration
	// SettleDelay is the pause after each expansion click, giving the
	// page time to render the newly loaded records.
	SettleDelay time.Duration
}

// Pipeline drives one extraction run over a live results page: expand
// until exhausted, then tokenize, classify, normalize and aggregate
// every match entry in page order.
type Pipeline struct {
	cfg Config
}

// New creates a pipeline. Zero config fields get defaults matching the
// page's observed load behavior.
func New(cfg Config) *Pipeline {
	if cfg.ExpandTimeout == 0 {
		cfg.ExpandTimeout = 20 * time.Second
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 3 * time.Second
	}
	return &Pipeline{cfg: cfg}
}

// Run extracts all match records from the page. Per-record failures are
// logged and skipped; only page-level failures (the match elements
// cannot be listed at all) are returned as errors. The returned rows
// preserve page encounter order.
func (p *Pipeline) Run(ctx context.Context, page Page, season model.Season, state, league string) ([]model.MatchRecord, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "flashscore: expansion cancelled")
		}
		outcome := p.expandOnce(page)
		zap.L().Debug("flashscore: expansion attempt", zap.Stringer("outcome", outcome))
		if outcome != Expanded {
			break
		}
		if err := settle(ctx, p.cfg.SettleDelay); err != nil {
			return nil, eris.Wrap(err, "flashscore: settle cancelled")
		}
	}

	elements, err := page.FindAll(matchSelector)
	if err != nil {
		return nil, eris.Wrap(err, "flashscore: list match entries")
	}

	clock := NewSeasonClock(season)
	agg := NewAggregator(state, league, season)
	skipped := 0
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			skipped++
			zap.L().Error("flashscore: skipping unreadable entry", zap.Error(err))
			continue
		}
		if err := extract(clock, agg, text); err != nil {
			skipped++
			zap.L().Error("flashscore: skipping record",
				zap.Strings("tokens", Tokenize(text)),
				zap.Error(err),
			)
		}
	}

	rows := agg.Rows()
	if len(rows) > 0 {
		zap.L().Info("flashscore: parsed matches",
			zap.Int("count", len(rows)),
			zap.Int("skipped", skipped),
			zap.String("season", season.Label),
			zap.String("league", league),
		)
	} else {
		zap.L().Info("flashscore: no matches parsed",
			zap.Int("skipped", skipped),
			zap.String("season", season.Label),
			zap.String("league", league),
		)
	}
	return rows, nil
}

// extract runs one text block through tokenizer, mapper, clock and
// aggregator. All three record-level error types pass through for the
// caller to log.
func extract(clock *SeasonClock, agg *Aggregator, text string) error {
	raw, err := MapTokens(Tokenize(text))
	if err != nil {
		return err
	}
	tipoff, err := clock.Resolve(raw.Stamp)
	if err != nil {
		return err
	}
	return agg.Add(raw, tipoff)
}

// expandOnce makes a single attempt to activate the "load more" control.
// Every failure mode is a normal loop-exit signal, not an error: a
// missing control means the page is fully expanded, and a control that
// never becomes clickable is treated the same as a timeout.
func (p *Pipeline) expandOnce(page Page) ExpandOutcome {
	el, ok, err := page.Find(moreSelector)
	if err != nil || !ok {
		return NoMoreControl
	}
	if err := el.WaitClickable(p.cfg.ExpandTimeout); err != nil {
		return TimedOut
	}
	if err := el.ScrollIntoView(); err != nil {
		return TimedOut
	}
	if err := el.Click(); err != nil {
		return TimedOut
	}
	return Expanded
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
