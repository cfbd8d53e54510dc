package cli

import (
	"context"
	"fmt"

	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app          *App
	tracker      *tracker.Tracker
	errorHandler *ErrorHandler
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{
		app:          app,
		tracker:      app.tracker,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the logout command. Logging out without a stored
// session is not an error.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.requireSession(ctx); err != nil {
		if c.errorHandler.IsAuthError(err) {
			fmt.Println("Keine aktive Sitzung")
			return nil
		}
		return c.errorHandler.Handle("sign out", err)
	}

	if err := c.tracker.Logout(ctx); err != nil {
		return c.errorHandler.Handle("sign out", err)
	}

	fmt.Println("Abgemeldet")
	return nil
}
