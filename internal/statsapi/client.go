// Package statsapi pulls league game logs from the public stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/courtline/matchdata/internal/model"
)

// Config holds stats API settings.
type Config struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Client calls the stats API. The endpoint throttles aggressively, so
// all requests go through a shared rate limiter.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
}

// NewClient creates a stats API client.
func NewClient(cfg Config) *Client {
	if cfg.TimeoutSecs == 0 {
		cfg.TimeoutSecs = 60
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "matchdata/1.0"
	}
	return &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		cfg:     cfg,
		limiter: rate.NewLimiter(1, 2),
	}
}

// resultSet is one named table in a stats API response.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type finderResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

// apiDateLayout is the MM/DD/YYYY format the endpoint expects.
const apiDateLayout = "01/02/2006"

// GamesByDate fetches all league games between from and to (inclusive)
// and returns the first result set as a frame in API column order.
func (c *Client) GamesByDate(ctx context.Context, from, to time.Time) (*model.Frame, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "statsapi: rate limiter wait")
	}

	q := url.Values{}
	q.Set("DateFromNullable", from.Format(apiDateLayout))
	q.Set("DateToNullable", to.Format(apiDateLayout))
	q.Set("PlayerOrTeam", "T")
	q.Set("LeagueID", "00")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/stats/leaguegamefinder?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: create request")
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: game finder request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("statsapi: unexpected status %d", resp.StatusCode)
	}

	var body finderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, eris.Wrap(err, "statsapi: decode response")
	}
	if len(body.ResultSets) == 0 {
		return nil, eris.New("statsapi: response has no result sets")
	}

	set := body.ResultSets[0]
	frame := model.NewFrame(set.Headers...)
	for _, row := range set.RowSet {
		if err := frame.Append(row); err != nil {
			return nil, eris.Wrap(err, "statsapi: malformed row set")
		}
	}

	zap.L().Info("statsapi: fetched games",
		zap.Int("rows", frame.Len()),
		zap.String("from", from.Format(apiDateLayout)),
		zap.String("to", to.Format(apiDateLayout)),
	)
	return frame, nil
}
