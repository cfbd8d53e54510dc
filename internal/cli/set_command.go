package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
	"github.com/RacerAlex69/Zeiterfassung/internal/errors"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// fieldNames maps the CLI field arguments to the entry fields.
var fieldNames = map[string]domain.TimeField{
	"start":           domain.FieldStartTime,
	"breakfast-start": domain.FieldBreakStart,
	"breakfast-end":   domain.FieldBreakEnd,
	"lunch-start":     domain.FieldLunchStart,
	"lunch-end":       domain.FieldLunchEnd,
	"end":             domain.FieldEndTime,
}

// SetCommand handles the set command
type SetCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewSetCommand creates a new set command handler
func NewSetCommand(app *App) *SetCommand {
	return &SetCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the set command
func (c *SetCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "set", "usage: zeit set <field> <HH:MM>")
	}

	field, ok := fieldNames[args[0]]
	if !ok {
		return errors.NewInvalidInputError("field", args[0],
			fmt.Sprintf("unknown field, expected one of: %s", knownFieldNames()))
	}

	if err := c.app.requireSession(ctx); err != nil {
		return c.errorHandler.Handle("record time", err)
	}

	if err := c.tracker.UpdateField(ctx, field, args[1]); err != nil {
		return c.errorHandler.Handle("record time", err)
	}

	entry := c.tracker.CurrentEntry()
	fmt.Printf("%s: %s\n", field.Label(), args[1])
	if duration := entry.EffectiveDuration(); duration != "" {
		fmt.Printf("Arbeitszeit heute: %s\n", duration)
	}
	return nil
}

func knownFieldNames() string {
	names := make([]string, 0, len(fieldNames))
	for name := range fieldNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
