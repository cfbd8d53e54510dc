package cli

import (
	"context"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
	"github.com/RacerAlex69/Zeiterfassung/internal/worktime"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return c.errorHandler.Handle("show status", err)
	}

	fmt.Printf("Angemeldet als %s\n", c.tracker.User().Email)
	if c.tracker.IsAdmin() {
		fmt.Println("Rolle: Administrator")
	}
	fmt.Println()

	entry := c.tracker.CurrentEntry()
	fmt.Printf("Heute (%s):\n", entry.Date)
	for _, field := range domain.TimeFields {
		fmt.Printf("  %-22s %s\n", field.Label()+":", displayValue(entry.Field(field)))
	}
	fmt.Printf("  %-22s %s\n", "Arbeitszeit:", displayValue(entry.EffectiveDuration()))
	fmt.Println()

	summary := c.tracker.MonthlySummary()
	fmt.Printf("Monat:  %s gearbeitet, Soll %s, Differenz %s\n",
		summary.FormattedTotal(),
		worktime.FormatMinutes(summary.TargetMinutes),
		summary.FormattedDiff())
	fmt.Printf("Woche:  %s gearbeitet\n", worktime.FormatMinutes(c.tracker.WeeklyTotalMinutes()))

	if incomplete := c.tracker.IncompleteEntries(); len(incomplete) > 0 {
		fmt.Printf("Unvollständige Einträge: %d\n", len(incomplete))
	}
	return nil
}
