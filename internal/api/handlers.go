package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nocturne-journal/nocturne/internal/contract"
)

const healthTimeout = 3 * time.Second

// decodeBody reads a JSON body into dst. An empty body leaves dst zero so
// the request's own validation reports which fields are missing.
// c.BodyParser is not used: it rejects bodies sent without a JSON
// Content-Type, which browser clients posting plain text do.
func decodeBody(c *fiber.Ctx, dst any, invalid string) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &contract.ValidationError{Message: invalid}
	}
	return nil
}

func (s *Server) handleDream(c *fiber.Ctx) error {
	var req contract.DreamRequest
	if err := decodeBody(c, &req, "dreamText and userId are required"); err != nil {
		return err
	}
	out, err := s.deps.Dreams.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(out.Result)
}

func (s *Server) handleJournal(c *fiber.Ctx) error {
	var req contract.JournalRequest
	if err := decodeBody(c, &req, "journalText and userId are required"); err != nil {
		return err
	}
	out, err := s.deps.Journals.Process(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(out.Result)
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var req contract.CreateEntryRequest
	if err := decodeBody(c, &req, "invalid payload"); err != nil {
		return err
	}
	entry, err := s.deps.Entries.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": entry})
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	items, err := s.deps.Entries.List(c.UserContext(), contract.ListEntriesRequest{
		UserID:     c.Query("userId"),
		Type:       c.Query("type"),
		DateString: c.Query("dateString"),
		Limit:      c.QueryInt("limit", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items)},
	})
}

func (s *Server) handleCreateGoal(c *fiber.Ctx) error {
	var req contract.CreateGoalRequest
	if err := decodeBody(c, &req, "invalid payload"); err != nil {
		return err
	}
	goal, err := s.deps.Goals.AddManual(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": goal})
}

func (s *Server) handleListGoals(c *fiber.Ctx) error {
	items, err := s.deps.Goals.ListByDate(c.UserContext(), c.Query("userId"), c.Query("dateString"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items)},
	})
}

// handleHealth reports 503 when the store is unreachable. An unreachable
// model is reported but does not fail the check.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	body := fiber.Map{"status": "ok", "store": "ok", "model": "ok"}
	code := fiber.StatusOK
	if s.deps.Store != nil {
		if err := s.deps.Store.PingContext(ctx); err != nil {
			s.logger.WarnContext(ctx, "health_store_unreachable", "error", err.Error())
			body["status"] = "degraded"
			body["store"] = "unreachable"
			code = fiber.StatusServiceUnavailable
		}
	}
	if s.deps.Model != nil && !s.deps.Model.Available(ctx) {
		body["model"] = "unavailable"
	}
	return c.Status(code).JSON(body)
}
