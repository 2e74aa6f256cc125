package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nocturne-journal/nocturne/internal/llm"
	"github.com/nocturne-journal/nocturne/internal/repository"
	"github.com/nocturne-journal/nocturne/internal/service"
)

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr string
	// WriteTimeout must outlast one model call.
	WriteTimeout time.Duration
	// DisableRequestLog turns off the access log middleware.
	DisableRequestLog bool
}

// Deps are the services the handlers call into.
type Deps struct {
	Dreams   service.DreamService
	Journals service.JournalService
	Entries  service.EntryService
	Goals    service.GoalService
	Store    repository.Pinger
	Model    llm.LLMClient
	Logger   *slog.Logger
}

// Server exposes the Fiber application.
type Server struct {
	app    *fiber.App
	deps   Deps
	cfg    Config
	logger *slog.Logger
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 90 * time.Second
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	srv := &Server{deps: deps, cfg: cfg, logger: log}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          srv.handleError,
	})
	app.Use(recover.New())
	if !cfg.DisableRequestLog {
		app.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	}
	app.Use(cors.New())

	srv.app = app
	srv.registerRoutes()
	return srv
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	s.logger.Info("nocturne listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)

	for _, path := range []string{"/generateGoalFromDream", "/generate-goal-from-dream"} {
		s.app.Post(path, s.handleDream)
		s.app.All(path, methodNotAllowed)
	}
	for _, path := range []string{"/processJournalEntry", "/process-journal-entry"} {
		s.app.Post(path, s.handleJournal)
		s.app.All(path, methodNotAllowed)
	}

	s.app.Get("/entries", s.handleListEntries)
	s.app.Post("/entries", s.handleCreateEntry)
	s.app.Get("/goals", s.handleListGoals)
	s.app.Post("/goals", s.handleCreateGoal)
}
