package runner

import (
	"context"
	"errors"
	"time"

	"go-nextdoor-leads/internal/metrics"
	"go-nextdoor-leads/internal/models"
	"go-nextdoor-leads/internal/scraper"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var timeNow = time.Now

// Archiver keeps a record of finished runs
type Archiver interface {
	Name() string
	Archive(ctx context.Context, report *models.RunReport) error
}

// Notifier tells someone a run finished
type Notifier interface {
	Notify(report *models.RunReport) error
}

type Runner struct {
	scraper    scraper.Scraper
	archivers  []Archiver
	notifier   Notifier
	metrics    *metrics.Metrics
	runTimeout time.Duration
}

type Option func(*Runner)

func WithArchiver(a Archiver) Option {
	return func(r *Runner) { r.archivers = append(r.archivers, a) }
}

func WithNotifier(n Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithRunTimeout bounds a whole run. Zero means no bound beyond the caller's context.
func WithRunTimeout(d time.Duration) Option {
	return func(r *Runner) { r.runTimeout = d }
}

func New(s scraper.Scraper, opts ...Option) *Runner {
	r := &Runner{scraper: s}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOnce performs one triggered run and records it. The returned error is the
// scraper's; archive and notification problems are only logged. A run rejected
// because another is in flight returns a nil report.
func (r *Runner) RunOnce(ctx context.Context) (*models.RunReport, error) {
	if r.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.runTimeout)
		defer cancel()
	}

	report := &models.RunReport{
		ID:        uuid.New(),
		Source:    r.scraper.Name(),
		StartedAt: timeNow().UTC(),
	}
	logger := log.With("run_id", report.ID, "source", report.Source)
	logger.Info("▶️ Run triggered")

	matches, err := r.scraper.Run(ctx)
	report.FinishedAt = timeNow().UTC()

	if errors.Is(err, scraper.ErrRunInProgress) {
		logger.Warn("⏳ Run rejected, another run is in progress")
		r.metrics.RunFinished(metrics.RunRejected, 0)
		return nil, err
	}

	if err != nil {
		report.Status = models.StatusFailed
		report.Error = err.Error()
		report.Matches = []scraper.Match{}
		r.metrics.RunFinished(metrics.RunFailure, report.Duration())
		logger.Error("❌ Run failed", "err", err, "elapsed", report.Duration())
	} else {
		if matches == nil {
			matches = []scraper.Match{}
		}
		report.Status = models.StatusSucceeded
		report.Matches = matches
		r.metrics.RunFinished(metrics.RunSuccess, report.Duration())
		logger.Info("🎉 Run finished", "matches", len(matches), "elapsed", report.Duration())
	}

	// Records are written even when the run context has expired
	recordCtx := context.WithoutCancel(ctx)
	for _, a := range r.archivers {
		if archErr := a.Archive(recordCtx, report); archErr != nil {
			logger.Warn("⚠️ Failed to archive run", "archiver", a.Name(), "err", archErr)
		}
	}
	if r.notifier != nil {
		if notifyErr := r.notifier.Notify(report); notifyErr != nil {
			logger.Warn("⚠️ Failed to send run notification", "err", notifyErr)
		}
	}

	return report, err
}
