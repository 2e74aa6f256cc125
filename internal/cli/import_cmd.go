package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nocturne-journal/nocturne/internal/cli/formatter"
)

func newImportCmd(app *App, userID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries and goals from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import is not configured")
			}
			res, err := app.Import.ImportFile(cmd.Context(), *userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries, %d goals\n",
				formatter.StyleTeal.Render("Imported"), res.EntriesCreated, res.GoalsCreated)
			return nil
		},
	}
}
