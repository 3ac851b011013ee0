// Package httpapi exposes the run/report API over HTTP using fiber/v3,
// with an SSE event route for a run's live lifecycle stream.
package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
)

// RunService runs one evaluation against the server's active dataset and
// publishes its lifecycle events onto an eventbus.Stream. Satisfied by a
// thin adapter over *engine.Engine (see cmd/dagcritic's serve command)
// that wires an engine.EventObserver publishing to the Stream this
// interface's caller registers.
type RunService interface {
	StartRun(ctx context.Context, runID string, req RunRequest, stream *eventbus.Stream)
	// Cancel cooperatively cancels an in-flight run. A no-op for an
	// unknown or already-finished run ID.
	Cancel(runID string)
}

// RunRequest is the body of POST /run. The server already holds one
// active dataset (loaded by the `serve` command at startup), so a run
// request only names how much of it to evaluate.
type RunRequest struct {
	// Difficulty is "all", "easy", "medium", or "hard". Empty is
	// treated as "all".
	Difficulty string `json:"difficulty"`
	// NumQuestions is how many questions the generator should produce
	// for this run. Zero uses the server's configured default.
	NumQuestions int `json:"num_questions"`
}

// ResultStore retrieves a finished run's report and lists available
// result files, backing GET /files and GET /results/{filename}.
type ResultStore interface {
	List() []string
	Get(filename string) (domain.RunReport, bool)
}

// Server wires the HTTP routes to the orchestrator and event registry.
type Server struct {
	app      *fiber.App
	runs     RunService
	results  ResultStore
	registry *eventbus.Registry
}

// NewServer builds a Server with every route registered.
func NewServer(runs RunService, results ResultStore, registry *eventbus.Registry) *Server {
	app := fiber.New()
	s := &Server{app: app, runs: runs, results: results, registry: registry}

	app.Post("/run", s.handleRun)
	app.Get("/run/:id/events", s.handleEvents)
	app.Delete("/run/:id", s.handleCancelRun)
	app.Get("/files", s.handleListFiles)
	app.Get("/results/:filename", s.handleGetResult)

	return s
}

// Listen starts the HTTP server on addr, blocking until it stops.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) handleRun(c fiber.Ctx) error {
	var req RunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	switch req.Difficulty {
	case "", "all", "easy", "medium", "hard":
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "difficulty must be one of all|easy|medium|hard"})
	}

	runID := uuid.New().String()
	stream := s.registry.Register(runID)
	s.runs.StartRun(context.Background(), runID, req, stream)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"run_id": runID})
}

func (s *Server) handleEvents(c fiber.Ctx) error {
	runID := c.Params("id")
	stream, ok := s.registry.Lookup(runID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		for ev := range stream.Events() {
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

func (s *Server) handleCancelRun(c fiber.Ctx) error {
	runID := c.Params("id")
	if _, ok := s.registry.Lookup(runID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	s.runs.Cancel(runID)
	return c.SendStatus(fiber.StatusAccepted)
}

func (s *Server) handleListFiles(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"files": s.results.List()})
}

func (s *Server) handleGetResult(c fiber.Ctx) error {
	report, ok := s.results.Get(c.Params("filename"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "result not found"})
	}
	return c.JSON(report)
}
