package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-nextdoor-leads/internal/models"
	"go-nextdoor-leads/internal/scraper"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id          UUID PRIMARY KEY,
	source      TEXT NOT NULL,
	status      TEXT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	match_count INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS leads (
	id         BIGSERIAL PRIMARY KEY,
	run_id     UUID NOT NULL REFERENCES scrape_runs(id) ON DELETE CASCADE,
	position   INT NOT NULL,
	source     TEXT NOT NULL,
	post       TEXT NOT NULL,
	keyword    TEXT NOT NULL,
	matched_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS leads_run_id_idx ON leads (run_id);
CREATE INDEX IF NOT EXISTS scrape_runs_started_at_idx ON scrape_runs (started_at DESC);
`

// Repository archives run reports in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// PgBouncer in transaction mode does not support prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *Repository) Name() string {
	return "postgres"
}

// EnsureSchema creates the tables if they are missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ---------------- RUN OPERATIONS ----------------

// Archive stores the run and its leads in one transaction
func (r *Repository) Archive(ctx context.Context, report *models.RunReport) error {
	rows, err := leadRows(report)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO scrape_runs (id, source, status, started_at, finished_at, error, match_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.Source, string(report.Status), report.StartedAt, report.FinishedAt, report.Error, len(report.Matches))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"leads"},
			[]string{"run_id", "position", "source", "post", "keyword", "matched_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert leads: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first, with their leads
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]models.RunReport, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, source, status, started_at, finished_at, error
		FROM scrape_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var reports []models.RunReport
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var rep models.RunReport
		var status string
		if err := rows.Scan(&rep.ID, &rep.Source, &status, &rep.StartedAt, &rep.FinishedAt, &rep.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rep.Status = models.RunStatus(status)
		rep.Matches = []scraper.Match{}
		index[rep.ID] = len(reports)
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	if len(reports) == 0 {
		return reports, nil
	}

	ids := make([]string, 0, len(reports))
	for _, rep := range reports {
		ids = append(ids, rep.ID.String())
	}
	leads, err := r.db.Query(ctx, `
		SELECT run_id, source, post, keyword, matched_at
		FROM leads WHERE run_id = ANY($1::uuid[]) ORDER BY run_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer leads.Close()

	for leads.Next() {
		var runID uuid.UUID
		var m scraper.Match
		var matchedAt time.Time
		if err := leads.Scan(&runID, &m.Source, &m.Post, &m.Keyword, &matchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		m.Timestamp = matchedAt.UTC().Format(scraper.TimestampLayout)
		i := index[runID]
		reports[i].Matches = append(reports[i].Matches, m)
	}
	if err := leads.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}
	return reports, nil
}

// leadRows converts matches into COPY rows, rejecting malformed timestamps
func leadRows(report *models.RunReport) ([][]any, error) {
	if report.ID == uuid.Nil {
		return nil, errors.New("run report has no id")
	}
	rows := make([][]any, 0, len(report.Matches))
	for i, m := range report.Matches {
		matchedAt, err := time.Parse(scraper.TimestampLayout, m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("lead %d has invalid timestamp %q: %w", i, m.Timestamp, err)
		}
		rows = append(rows, []any{report.ID, i, m.Source, m.Post, m.Keyword, matchedAt})
	}
	return rows, nil
}
