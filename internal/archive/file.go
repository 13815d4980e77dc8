package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go-nextdoor-leads/internal/models"

	"github.com/charmbracelet/log"
)

// FileArchiver appends runs that found leads to a daily JSON file: leads-YYYY-MM-DD.json
type FileArchiver struct {
	mu  sync.Mutex
	dir string
}

func NewFileArchiver(dir string) *FileArchiver {
	return &FileArchiver{dir: dir}
}

func (a *FileArchiver) Name() string {
	return "file"
}

// PathFor returns the file a run started at the report's date is written to
func (a *FileArchiver) PathFor(report *models.RunReport) string {
	filename := fmt.Sprintf("leads-%s.json", report.StartedAt.Format("2006-01-02"))
	return filepath.Join(a.dir, filename)
}

func (a *FileArchiver) Archive(ctx context.Context, report *models.RunReport) error {
	if len(report.Matches) == 0 {
		log.Info("ℹ️ No leads to save.")
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	//create logs directory if not exists
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := a.PathFor(report)
	reports, err := ReadReports(path)
	if err != nil {
		return err
	}
	reports = append(reports, *report)

	data, err := json.MarshalIndent(reports, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal run reports: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info("📁 Results saved", "path", path, "matches", len(report.Matches))
	return nil
}

// ReadReports loads the runs archived in path; a missing file is an empty archive
func ReadReports(path string) ([]models.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var reports []models.RunReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return reports, nil
}
