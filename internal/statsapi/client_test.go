package statsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const finderFixture = `{
	"resultSets": [{
		"name": "LeagueGameFinderResults",
		"headers": ["TEAM_NAME", "GAME_DATE", "PTS"],
		"rowSet": [
			["Lakers", "2023-01-15", 100],
			["Celtics", "2023-01-15", 98]
		]
	}]
}`

func TestGamesByDate(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(finderFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	from := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC)

	frame, err := client.GamesByDate(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, "/stats/leaguegamefinder", gotPath)
	assert.Equal(t, []string{"01/15/2023"}, gotQuery["DateFromNullable"])
	assert.Equal(t, []string{"01/16/2023"}, gotQuery["DateToNullable"])

	assert.Equal(t, []string{"TEAM_NAME", "GAME_DATE", "PTS"}, frame.Columns)
	require.Equal(t, 2, frame.Len())
	assert.Equal(t, "Lakers", frame.Rows[0][0])
}

func TestGamesByDate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.GamesByDate(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestGamesByDate_EmptyResultSets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.GamesByDate(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result sets")
}

func TestGamesByDate_RaggedRowSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets": [{"headers": ["A", "B"], "rowSet": [[1]]}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.GamesByDate(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed row set")
}
