package models

import (
	"time"

	"go-nextdoor-leads/internal/scraper"

	"github.com/google/uuid"
)

type RunStatus string

const (
	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusFailed    RunStatus = "FAILED"
)

// RunReport is what one triggered run produced, kept for archives and notifications.
type RunReport struct {
	ID         uuid.UUID       `json:"id"`
	Source     string          `json:"source"`
	Status     RunStatus       `json:"status"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Matches    []scraper.Match `json:"matches"`
	Error      string          `json:"error,omitempty"`
}

func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *RunReport) Succeeded() bool {
	return r.Status == StatusSucceeded
}
