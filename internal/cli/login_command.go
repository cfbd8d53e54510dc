package cli

import (
	"context"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/errors"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// LoginCommand handles the login command
type LoginCommand struct {
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "login", "usage: zeit login <email> <password>")
	}

	if err := c.tracker.Login(ctx, args[0], args[1]); err != nil {
		return c.errorHandler.Handle("sign in", err)
	}

	fmt.Printf("Angemeldet als %s\n", c.tracker.User().Email)
	if c.tracker.IsAdmin() {
		fmt.Println("Administrator-Sicht aktiv: Einträge aller Nutzer sind sichtbar")
	}
	return nil
}
