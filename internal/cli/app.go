package cli

import (
	"context"

	"github.com/RacerAlex69/Zeiterfassung/internal/config"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// App bundles the session tracker and configuration for the command
// handlers.
type App struct {
	tracker *tracker.Tracker
	config  *config.Config
}

// NewApp creates the CLI application around an existing tracker
func NewApp(tr *tracker.Tracker, cfg *config.Config) *App {
	return &App{
		tracker: tr,
		config:  cfg,
	}
}

// requireSession restores the stored session. Commands that read or
// write entries call this before doing anything else.
func (a *App) requireSession(ctx context.Context) error {
	if a.tracker.State() == tracker.StateAuthenticated {
		return nil
	}
	return a.tracker.Resume(ctx)
}
