package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RacerAlex69/Zeiterfassung/internal/domain"
)

func TestExportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	month := time.Now().Format("2006_01")

	t.Run("writes the monthly report for a regular user", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.sessionUser = mock.addUser("user-1", "anna@example.de", "geheim123")
		mock.addEntry(domain.TimeEntry{
			UserID: "user-1", Date: today(),
			StartTime: "08:00", EndTime: "16:00",
		})

		dir := t.TempDir()
		cmd := NewExportCommand(app)
		cmd.OutputDir = dir

		require.NoError(t, cmd.Execute(ctx, []string{}))

		content, err := os.ReadFile(filepath.Join(dir, "Monatsreport_"+month+".csv"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "Datum,Startzeit,"))
		assert.Contains(t, string(content), "8h 0min")
	})

	t.Run("prefixes the owner column for the administrator", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.addUser("user-1", "anna@example.de", "geheim123")
		mock.sessionUser = mock.addUser("admin-1", testAdminEmail, "geheim123")
		mock.addEntry(domain.TimeEntry{
			UserID: "user-1", Date: today(),
			StartTime: "08:00", EndTime: "16:00",
		})

		dir := t.TempDir()
		cmd := NewExportCommand(app)
		cmd.OutputDir = dir

		require.NoError(t, cmd.Execute(ctx, []string{}))

		content, err := os.ReadFile(filepath.Join(dir, "Monatsreport_"+month+".csv"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "Nutzer-ID,Datum,"))
	})

	t.Run("writes a signed per-user report for the administrator", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.addUser("user-1", "anna@example.de", "geheim123")
		mock.sessionUser = mock.addUser("admin-1", testAdminEmail, "geheim123")
		mock.addEntry(domain.TimeEntry{
			UserID: "user-1", Date: today(),
			StartTime: "08:00", EndTime: "16:00",
		})

		dir := t.TempDir()
		cmd := NewExportCommand(app)
		cmd.OutputDir = dir
		cmd.TargetUser = "user-1"

		require.NoError(t, cmd.Execute(ctx, []string{}))

		content, err := os.ReadFile(filepath.Join(dir, "user-1_Monatsreport_"+month+".csv"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Unterschrift Mitarbeiter")
	})

	t.Run("refuses per-user reports for regular users", func(t *testing.T) {
		app, mock := setupTestApp(t)
		mock.sessionUser = mock.addUser("user-1", "anna@example.de", "geheim123")

		cmd := NewExportCommand(app)
		cmd.OutputDir = t.TempDir()
		cmd.TargetUser = "user-1"

		require.Error(t, cmd.Execute(ctx, []string{}))
	})
}
