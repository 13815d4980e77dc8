package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-nextdoor-leads/internal/browser"

	"github.com/charmbracelet/log"
)

// ScreenShotDebugger saves debug screenshots of the feed page.
// A nil *ScreenShotDebugger does nothing.
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if dir == "" {
		return nil
	}
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

// CaptureAndLog is best effort: failures are logged and returned, never fatal to a run
func (s *ScreenShotDebugger) CaptureAndLog(page browser.Page, name, message string) (string, error) {
	if s == nil {
		return "", nil
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		log.Warn("⚠️ Failed to create screenshot directory", "err", err)
		return "", err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)
	log.Info("📸 " + message)

	if err := page.Screenshot(path); err != nil {
		log.Warn("⚠️ Failed to capture screenshot", "err", err)
		return "", err
	}

	log.Info("Screenshot saved", "path", path)
	return path, nil
}
