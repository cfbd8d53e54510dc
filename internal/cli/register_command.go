package cli

import (
	"context"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/errors"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// RegisterCommand handles the register command
type RegisterCommand struct {
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "register", "usage: zeit register <email> <password>")
	}

	if err := c.tracker.Register(ctx, args[0], args[1]); err != nil {
		return c.errorHandler.Handle("create account", err)
	}

	fmt.Printf("Konto angelegt und angemeldet als %s\n", c.tracker.User().Email)
	return nil
}
