package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nocturne-journal/nocturne/internal/api"
	"github.com/nocturne-journal/nocturne/internal/cli"
	"github.com/nocturne-journal/nocturne/internal/db"
	"github.com/nocturne-journal/nocturne/internal/llm"
	"github.com/nocturne-journal/nocturne/internal/repository"
	"github.com/nocturne-journal/nocturne/internal/repository/docstore"
	"github.com/nocturne-journal/nocturne/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stores bundles the repositories of whichever backend NOCTURNE_STORE selects.
type stores struct {
	entries repository.EntryRepo
	goals   repository.GoalRepo
	pinger  repository.Pinger
	close   func() error
}

func run() error {
	ctx := context.Background()
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	logger := newLogger(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
	slog.SetDefault(logger)

	st, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	// Wire the model client. A missing key only fails the commands that
	// actually call the model.
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(llmCfg, observer)
	if err != nil {
		logger.Warn("llm client unavailable", "provider", llmCfg.Provider, "error", err.Error())
		client = llm.NewUnconfiguredClient(err)
	}

	// Wire services
	useCases := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Dreams:   service.NewDreamService(st.entries, st.goals, client, nil, useCases),
		Journals: service.NewJournalService(st.entries, st.goals, client, nil, useCases),
		Entries:  service.NewEntryService(st.entries, nil, useCases),
		Goals:    service.NewGoalService(st.goals, nil),
		Import:   service.NewImportService(st.entries, st.goals, nil, useCases),
	}
	app.IsInteractive = func() bool { return interactive }

	addr := os.Getenv("NOCTURNE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	app.Server = api.NewServer(api.Config{Addr: addr}, api.Deps{
		Dreams:   app.Dreams,
		Journals: app.Journals,
		Entries:  app.Entries,
		Goals:    app.Goals,
		Store:    st.pinger,
		Model:    client,
		Logger:   logger,
	})

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes human-readable logs to a terminal and JSON elsewhere.
func newLogger(w io.Writer, tty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(os.Getenv("NOCTURNE_LOG_LEVEL"), "debug") {
		opts.Level = slog.LevelDebug
	}
	if tty {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func openStores(ctx context.Context) (*stores, error) {
	switch backend := os.Getenv("NOCTURNE_STORE"); backend {
	case "", "sqlite":
		path, err := db.ResolvePath()
		if err != nil {
			return nil, err
		}
		database, err := db.OpenDB(path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return &stores{
			entries: repository.NewSQLiteEntryRepo(database),
			goals:   repository.NewSQLiteGoalRepo(database, db.NewSQLiteUnitOfWork(database)),
			pinger:  database,
			close:   database.Close,
		}, nil
	case "firestore":
		fs, err := docstore.Open(ctx, os.Getenv("NOCTURNE_FIRESTORE_PROJECT"))
		if err != nil {
			return nil, err
		}
		return &stores{
			entries: fs.Entries(),
			goals:   fs.Goals(),
			pinger:  fs,
			close:   fs.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown NOCTURNE_STORE %q (want sqlite or firestore)", backend)
	}
}
