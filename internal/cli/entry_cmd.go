package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nocturne-journal/nocturne/internal/cli/formatter"
	"github.com/nocturne-journal/nocturne/internal/contract"
	"github.com/nocturne-journal/nocturne/internal/domain"
	"github.com/nocturne-journal/nocturne/internal/service"
)

func newDreamCmd(app *App, userID *string) *cobra.Command {
	var text, notes string
	var refresh, noSave bool

	cmd := &cobra.Command{
		Use:   "dream",
		Short: "Record a dream and get today's goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dreamText, err := resolveText(app, text, "What did you dream?", "I was flying over a city made of glass…")
			if err != nil {
				return err
			}

			req := contract.DreamRequest{
				DreamText:    dreamText,
				UserID:       *userID,
				RefreshGoals: refresh,
				QuickNotes:   notes,
			}
			if !noSave {
				entry, err := app.Entries.Create(ctx, contract.CreateEntryRequest{
					UserID: *userID,
					Type:   string(domain.EntryDream),
					Text:   dreamText,
				})
				if err != nil {
					return err
				}
				req.EntryID = entry.ID
			}

			var out *service.GenerationOutcome
			err = withSpinner(app, "Reading your dream…", func() error {
				var genErr error
				out, genErr = app.Dreams.Generate(ctx, req)
				return genErr
			})
			if err != nil {
				return err
			}

			printOutcome(cmd, "Dream", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Dream text (prompted when omitted)")
	cmd.Flags().StringVar(&notes, "notes", "", "Quick notes to use instead of today's stored notes")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Replace today's AI goals")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the dream as an entry")

	return cmd
}

func newJournalCmd(app *App, userID *string) *cobra.Command {
	var text, date string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write an evening journal entry and get a reflection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			journalText, err := resolveText(app, text, "How was your day?", "Today I…")
			if err != nil {
				return err
			}

			req := contract.JournalRequest{
				JournalText: journalText,
				UserID:      *userID,
				DateString:  date,
			}
			if !noSave {
				entry, err := app.Entries.Create(ctx, contract.CreateEntryRequest{
					UserID:     *userID,
					Type:       string(domain.EntryJournal),
					Text:       journalText,
					DateString: date,
				})
				if err != nil {
					return err
				}
				req.EntryID = entry.ID
			}

			var out *service.GenerationOutcome
			err = withSpinner(app, "Reflecting…", func() error {
				var genErr error
				out, genErr = app.Journals.Process(ctx, req)
				return genErr
			})
			if err != nil {
				return err
			}

			printOutcome(cmd, "Journal", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Journal text (prompted when omitted)")
	cmd.Flags().StringVar(&date, "date", "", "Journal date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the journal as an entry")

	return cmd
}

func newNoteCmd(app *App, userID *string) *cobra.Command {
	var text, date string

	cmd := &cobra.Command{
		Use:   "note",
		Short: "Add a quick note for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			noteText, err := resolveText(app, text, "Quick note", "")
			if err != nil {
				return err
			}
			entry, err := app.Entries.Create(cmd.Context(), contract.CreateEntryRequest{
				UserID:     *userID,
				Type:       string(domain.EntryNote),
				Text:       noteText,
				DateString: date,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Noted for %s (%s)\n", entry.DateString, entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Note text (prompted when omitted)")
	cmd.Flags().StringVar(&date, "date", "", "Note date YYYY-MM-DD (default today)")

	return cmd
}

func newGoalsCmd(app *App, userID *string) *cobra.Command {
	var date, add string

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List or add goals for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if add != "" {
				if _, err := app.Goals.AddManual(ctx, contract.CreateGoalRequest{
					UserID:     *userID,
					Text:       add,
					DateString: date,
				}); err != nil {
					return err
				}
			}

			day := date
			if day == "" {
				day = domain.DateOf(time.Now())
			}
			goals, err := app.Goals.ListByDate(ctx, *userID, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(day, goals))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&add, "add", "", "Add a manual goal with this text first")

	return cmd
}

func newEntriesCmd(app *App, userID *string) *cobra.Command {
	var typ, date string
	var limit int

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Entries.List(cmd.Context(), contract.ListEntriesRequest{
				UserID:     *userID,
				Type:       typ,
				DateString: date,
				Limit:      limit,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntries(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Filter by type: dream, journal or note")
	cmd.Flags().StringVar(&date, "date", "", "Filter by day YYYY-MM-DD")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")

	return cmd
}

func printOutcome(cmd *cobra.Command, title string, out *service.GenerationOutcome) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, formatter.FormatResult(title, out.Result))
	if out.GoalsRemoved > 0 {
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Replaced %d earlier goals.", out.GoalsRemoved)))
	}
	for _, perr := range out.PersistErrs {
		fmt.Fprintln(w, formatter.StyleAmber.Render("warning: "+perr.Error()))
	}
}
