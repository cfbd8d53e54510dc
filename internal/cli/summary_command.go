package cli

import (
	"context"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
	"github.com/RacerAlex69/Zeiterfassung/internal/worktime"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return c.errorHandler.Handle("show summary", err)
	}

	summary := c.tracker.MonthlySummary()
	fmt.Printf("Monatsübersicht (%d Einträge)\n", summary.EntryCount)
	fmt.Printf("  Gearbeitet: %s\n", summary.FormattedTotal())
	fmt.Printf("  Soll:       %s\n", worktime.FormatMinutes(summary.TargetMinutes))
	fmt.Printf("  Differenz:  %s\n", summary.FormattedDiff())
	fmt.Printf("Diese Woche:  %s\n", worktime.FormatMinutes(c.tracker.WeeklyTotalMinutes()))

	if incomplete := c.tracker.IncompleteEntries(); len(incomplete) > 0 {
		fmt.Println()
		fmt.Println("Unvollständige Einträge:")
		for _, entry := range incomplete {
			fmt.Printf("  %s (Start: %s, Ende: %s)\n",
				entry.Date, displayValue(entry.StartTime), displayValue(entry.EndTime))
		}
	}

	if c.tracker.IsAdmin() {
		fmt.Println()
		fmt.Println("Monatssummen je Nutzer:")
		summaries := c.tracker.UserSummaries()
		if len(summaries) == 0 {
			fmt.Println("  keine Arbeitszeiten in diesem Monat")
		}
		for _, user := range summaries {
			fmt.Printf("  %-30s %s\n", user.Email, user.FormattedTotal())
		}
	}
	return nil
}
