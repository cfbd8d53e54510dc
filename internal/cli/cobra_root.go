package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/RacerAlex69/Zeiterfassung/internal/backend"
	"github.com/RacerAlex69/Zeiterfassung/internal/config"
	"github.com/RacerAlex69/Zeiterfassung/internal/tracker"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	backend backend.Service
	config  *config.Config
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(svc backend.Service, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		backend: svc,
		config:  cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "zeit",
		Short: "Arbeitszeiterfassung von der Kommandozeile",
		Long: `Zeiterfassung (zeit) records daily working times against a central service.

FEATURES:
  • Record start, end and break clock times for the current day
  • Durations net of breakfast and lunch breaks, recomputed on every edit
  • Monthly and weekly totals against a configurable daily target
  • Administrator account sees all users' entries and per-user summaries
  • Monthly CSV reports, including signed per-employee reports

EXAMPLES:
  zeit login anna@firma.de geheim          # Sign in
  zeit set start 08:30                     # Record the start of the work day
  zeit set lunch-start 12:00               # Start of the lunch break
  zeit set lunch-end 12:45                 # End of the lunch break
  zeit set end 17:15                       # End of the work day
  zeit status                              # Today's entry and the running totals
  zeit list                                # All visible entries
  zeit summary                             # Monthly/weekly aggregation
  zeit export                              # Monthly CSV report
  zeit export --user <id>                  # Signed per-employee report (admin)
  zeit logout                              # End the session

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Service Configuration:
    ZEIT_SERVICE_URL                       Base URL of the data and auth service
    ZEIT_SERVICE_API_KEY                   API key for the service
    ZEIT_BACKEND                           Backend implementation: rest or sqlite (default: rest)

  Tracking Configuration:
    ZEIT_ADMIN_EMAIL                       Administrator email address
    ZEIT_DAILY_TARGET_MINUTES              Daily working-time target in minutes (default: 480)

  Local Database Configuration (sqlite backend):
    ZEIT_DB_DIR                            Database directory
    ZEIT_DB_FILENAME                       Database filename (default: zeit.db)

  Application Configuration:
    ZEIT_APP_TIMEOUT                       Application timeout (default: 60s)
    ZEIT_APP_VERBOSE                       Enable verbose output (default: false)
    ZEIT_DEBUG                             Enable debug logging

GETTING HELP:
  zeit [command] --help                    # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.getConfigFromFlags(); err != nil {
				return err
			}
			tr := tracker.New(root.backend, root.config.Admin.Email, root.config.Tracking.DailyTargetMinutes)
			root.app = NewApp(tr, root.config)
			return nil
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("admin-email", "", "Administrator email (overrides ZEIT_ADMIN_EMAIL)")
	flags.Int("daily-target", 0, "Daily target in minutes (overrides ZEIT_DAILY_TARGET_MINUTES)")
	flags.Duration("app-timeout", 0, "Application timeout (overrides ZEIT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides ZEIT_APP_VERBOSE)")
}

// getConfigFromFlags applies configuration overrides from flags
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()
	overrides := config.ConfigOverrides{}

	if flags.Changed("admin-email") {
		value, _ := flags.GetString("admin-email")
		overrides.AdminEmail = &value
	}
	if flags.Changed("daily-target") {
		value, _ := flags.GetInt("daily-target")
		overrides.DailyTargetMinutes = &value
	}
	if flags.Changed("app-timeout") {
		value, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &value
	}
	if flags.Changed("verbose") {
		value, _ := flags.GetBool("verbose")
		overrides.Verbose = &value
	}

	return r.config.ApplyOverrides(&overrides)
}

func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in to the time tracking service",
		Long:  "Sign in with email and password. The session is kept until the next logout.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLoginCommand(r.app).Execute(ctx, args)
		},
	}

	registerCmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create a new account",
		Long:  "Create a new account with email and password and sign in with it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewRegisterCommand(r.app).Execute(ctx, args)
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewLogoutCommand(r.app).Execute(ctx, args)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's entry and the running totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewStatusCommand(r.app).Execute(ctx, args)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <field> <HH:MM>",
		Short: "Record a clock time on today's entry",
		Long: `Record a clock time on today's entry.

Fields:
  start             Beginning of the work day
  breakfast-start   Beginning of the breakfast break
  breakfast-end     End of the breakfast break
  lunch-start       Beginning of the lunch break
  lunch-end         End of the lunch break
  end               End of the work day

The worked duration is recomputed whenever both start and end are set.

Examples:
  zeit set start 08:30
  zeit set lunch-start 12:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSetCommand(r.app).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all visible time entries",
		Long:  "List your entries, or every user's entries when signed in as the administrator.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewListCommand(r.app).Execute(ctx, args)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show monthly and weekly totals",
		Long:  "Show the monthly total against the target, the weekly total and incomplete entries. The administrator additionally sees per-user monthly sums.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			return NewSummaryCommand(r.app).Execute(ctx, args)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the monthly CSV report",
		Long: `Write the monthly report as a CSV file.

Without flags the report covers all visible entries. With --user the
report is restricted to one employee's current month and carries a
signature line (administrator only).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			handler := NewExportCommand(r.app)
			handler.TargetUser, _ = cmd.Flags().GetString("user")
			handler.OutputDir, _ = cmd.Flags().GetString("output-dir")
			return handler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().String("user", "", "Export a single employee's signed monthly report (admin only)")
	exportCmd.Flags().String("output-dir", ".", "Directory the CSV file is written to")

	r.cmd.AddCommand(loginCmd, registerCmd, logoutCmd, statusCmd, setCmd, listCmd, summaryCmd, exportCmd)
}
