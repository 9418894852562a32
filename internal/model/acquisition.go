package model

import "time"

// AcquisitionSource identifies where a batch of rows came from.
type AcquisitionSource string

const (
	SourceFlashscore AcquisitionSource = "flashscore"
	SourceStatsAPI   AcquisitionSource = "stats_api"
	SourceCSV        AcquisitionSource = "csv"
)

// Acquisition is the bookkeeping record written alongside every persisted
// batch: one row per run, regardless of how many match rows it produced.
type Acquisition struct {
	ID         string
	Source     AcquisitionSource
	State      string
	League     string
	Season     string
	RowCount   int
	StartedAt  time.Time
	FinishedAt time.Time
}
