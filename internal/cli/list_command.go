package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		return c.errorHandler.Handle("list entries", err)
	}

	entries := c.tracker.Entries()
	if len(entries) == 0 {
		fmt.Println("Keine Einträge vorhanden")
		return nil
	}

	return c.printEntries(entries)
}

func (c *ListCommand) printEntries(entries []domain.TimeEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	columns := []string{"Datum", "Start", "Frühstück", "Mittag", "Ende", "Arbeitszeit"}
	if c.tracker.IsAdmin() {
		columns = append([]string{"Nutzer-ID"}, columns...)
	}
	fmt.Fprintln(w, strings.Join(columns, "\t"))

	for _, entry := range entries {
		row := []string{
			entry.Date,
			displayValue(entry.StartTime),
			displaySpan(entry.BreakStart, entry.BreakEnd),
			displaySpan(entry.LunchStart, entry.LunchEnd),
			displayValue(entry.EndTime),
			displayValue(entry.EffectiveDuration()),
		}
		if c.tracker.IsAdmin() {
			row = append([]string{entry.UserID}, row...)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// displayValue renders unset fields as "-".
func displayValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func displaySpan(from, to string) string {
	if from == "" && to == "" {
		return "-"
	}
	return fmt.Sprintf("%s - %s", displayValue(from), displayValue(to))
}
