package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nocturne-journal/nocturne/internal/service"
)

// Runner is a long-running process such as the HTTP server.
type Runner interface {
	Run(ctx context.Context) error
}

// App holds references to all services used by CLI commands.
type App struct {
	Dreams   service.DreamService
	Journals service.JournalService
	Entries  service.EntryService
	Goals    service.GoalService
	Import   service.ImportService
	Server   Runner

	// IsInteractive reports whether stdin is a terminal. Prompts and
	// spinners are only shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "nocturne" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var userID string

	root := &cobra.Command{
		Use:           "nocturne",
		Short:         "Dream and journal companion backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultUser := os.Getenv("NOCTURNE_USER")
	if defaultUser == "" {
		defaultUser = "local"
	}
	root.PersistentFlags().StringVar(&userID, "user", defaultUser, "User ID to act as")

	root.AddCommand(
		newServeCmd(app),
		newDreamCmd(app, &userID),
		newJournalCmd(app, &userID),
		newNoteCmd(app, &userID),
		newGoalsCmd(app, &userID),
		newEntriesCmd(app, &userID),
		newImportCmd(app, &userID),
	)

	return root
}
