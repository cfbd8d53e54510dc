package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RacerAlex69/Zeiterfassung/internal/report"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler

	// TargetUser selects a single employee for a signed per-user
	// report. Admin only.
	TargetUser string
	// OutputDir is where the CSV file is written. Defaults to the
	// working directory.
	OutputDir string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
		OutputDir:    ".",
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return c.errorHandler.Handle("export report", err)
	}

	rep, err := c.buildReport()
	if err != nil {
		return c.errorHandler.Handle("export report", err)
	}

	path := filepath.Join(c.OutputDir, rep.Filename)
	if err := os.WriteFile(path, rep.Content, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Report geschrieben: %s\n", path)
	return nil
}

func (c *ExportCommand) buildReport() (report.Report, error) {
	if c.TargetUser != "" {
		return c.tracker.ExportForUser(c.TargetUser)
	}
	return c.tracker.ExportMonthly()
}
