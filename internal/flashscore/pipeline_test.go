package flashscore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/courtline/matchdata/internal/model"
)

// captureLogs swaps in an observed global logger for the test's duration.
func captureLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })
	return logs
}

type fakeElement struct {
	text    string
	textErr error
	waitErr error
	clicks  int
}

func (e *fakeElement) Text() (string, error) { return e.text, e.textErr }
func (e *fakeElement) ScrollIntoView() error { return nil }
func (e *fakeElement) Click() error { e.clicks++; return nil }

func (e *fakeElement) WaitClickable(time.Duration) error { return e.waitErr }

type fakePage struct {
	more    []*fakeElement // one control per expansion round, nil round = control gone
	round   int
	matches []Element
}

func (p *fakePage) Find(selector string) (Element, bool, error) {
	if p.round >= len(p.more) {
		return nil, false, nil
	}
	el := p.more[p.round]
	p.round++
	if el == nil {
		return nil, false, nil
	}
	return el, true, nil
}

func (p *fakePage) FindAll(selector string) ([]Element, error) {
	return p.matches, nil
}

func block(lines ...string) *fakeElement {
	return &fakeElement{text: strings.Join(lines, "\n")}
}

func testPipeline() *Pipeline {
	return New(Config{ExpandTimeout: time.Millisecond, SettleDelay: time.Millisecond})
}

func TestPipelineRun_EndToEnd(t *testing.T) {
	more := &fakeElement{}
	page := &fakePage{
		more: []*fakeElement{more, more}, // two expansions, then control gone
		matches: []Element{
			// January record: resolves to the season's end year.
			block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
				"25", "24", "25", "24", "25", "25", "25", "25"),
			// December after January: rollover to the start year.
			block("01.12. 18:00", "TeamA", "TeamB", "90", "85",
				"20", "18", "25", "20", "25", "24", "20", "23"),
			// Overtime entry with the marker line; equal totals.
			block("28.11. 20:30", "Heat", "Bulls", "AOT", "101", "101",
				"20", "20", "25", "25", "25", "25", "21", "21", "10", "10"),
		},
	}

	rows, err := testPipeline().Run(context.Background(), page, season2223(t), "USA", "NBA")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, more.clicks)

	assert.Equal(t, time.Date(2023, time.January, 15, 19, 0, 0, 0, time.UTC), rows[0].Tipoff)
	assert.Equal(t, model.WinnerHome, rows[0].Winner)

	second := rows[1]
	assert.Equal(t, time.Date(2022, time.December, 1, 18, 0, 0, 0, time.UTC), second.Tipoff)
	assert.Equal(t, "TeamA", second.Home)
	assert.Equal(t, "TeamB", second.Away)
	assert.Equal(t, model.WinnerHome, second.Winner)
	assert.Equal(t, 90, second.HomePts)
	assert.Equal(t, 85, second.AwayPts)
	assert.Equal(t, 0, second.HomeOT)
	assert.Equal(t, 0, second.AwayOT)
	assert.Equal(t, "USA", second.State)
	assert.Equal(t, "NBA", second.League)
	assert.Equal(t, "2022-2023", second.Season)

	third := rows[2]
	assert.Equal(t, 2022, third.Tipoff.Year())
	assert.Equal(t, model.WinnerDraw, third.Winner)
	assert.Equal(t, 10, third.HomeOT)
	assert.Equal(t, 10, third.AwayOT)
}

func TestPipelineRun_MalformedRecordIsIsolated(t *testing.T) {
	logs := captureLogs(t, zapcore.ErrorLevel)
	page := &fakePage{
		matches: []Element{
			// 14 tokens: no known shape.
			block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
				"25", "24", "25", "24", "25", "25", "25", "25", "extra"),
			block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
				"25", "24", "25", "24", "25", "25", "25", "25"),
		},
	}

	rows, err := testPipeline().Run(context.Background(), page, season2223(t), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lakers", rows[0].Home)

	// Exactly one skip logged, for the malformed entry only.
	assert.Equal(t, 1, logs.FilterMessage("flashscore: skipping record").Len())
	assert.Equal(t, 1, logs.Len())
}

func TestPipelineRun_UnreadableEntryIsIsolated(t *testing.T) {
	page := &fakePage{
		matches: []Element{
			&fakeElement{textErr: eris.New("node detached")},
			block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
				"25", "24", "25", "24", "25", "25", "25", "25"),
		},
	}

	rows, err := testPipeline().Run(context.Background(), page, season2223(t), "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPipelineRun_NoRecords(t *testing.T) {
	page := &fakePage{}

	rows, err := testPipeline().Run(context.Background(), page, season2223(t), "", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPipelineRun_ExpansionTimeoutEndsLoop(t *testing.T) {
	stuck := &fakeElement{waitErr: eris.New("never clickable")}
	page := &fakePage{
		more: []*fakeElement{stuck, stuck}, // would keep offering the control
		matches: []Element{
			block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
				"25", "24", "25", "24", "25", "25", "25", "25"),
		},
	}

	rows, err := testPipeline().Run(context.Background(), page, season2223(t), "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	// The first timed-out attempt ended the loop; no second attempt.
	assert.Equal(t, 1, page.round)
	assert.Equal(t, 0, stuck.clicks)
}

func TestPipelineRun_Idempotent(t *testing.T) {
	newPage := func() *fakePage {
		return &fakePage{
			matches: []Element{
				block("15.01. 19:00", "Lakers", "Celtics", "100", "98",
					"25", "24", "25", "24", "25", "25", "25", "25"),
				block("01.12. 18:00", "TeamA", "TeamB", "90", "85",
					"20", "18", "25", "20", "25", "24", "20", "23"),
			},
		}
	}

	first, err := testPipeline().Run(context.Background(), newPage(), season2223(t), "USA", "NBA")
	require.NoError(t, err)
	second, err := testPipeline().Run(context.Background(), newPage(), season2223(t), "USA", "NBA")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandOutcome_String(t *testing.T) {
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "no_more_control", NoMoreControl.String())
	assert.Equal(t, "timed_out", TimedOut.String())
	assert.Equal(t, "unknown", ExpandOutcome(99).String())
}
