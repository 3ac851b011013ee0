package engine

import (
	"context"
	"sync"
	"time"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/httpapi"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/orchestrator"
)

// RunService adapts an Engine to internal/httpapi.RunService, running
// each request against the one active dataset the serve command loaded
// at startup: the HTTP boundary takes only {difficulty, num_questions},
// with the dataset itself held as server-side state rather than carried
// in the request.
type RunService struct {
	engine      *Engine
	datasetName string
	dataset     domain.Dataset
	metadata    domain.Metadata
	registry    *eventbus.Registry
	resultsDir  string

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// NewRunService returns a RunService that runs every request against
// dataset/metadata, persisting each report under resultsDir.
func NewRunService(e *Engine, datasetName string, dataset domain.Dataset, metadata domain.Metadata, registry *eventbus.Registry, resultsDir string) *RunService {
	return &RunService{
		engine:      e,
		datasetName: datasetName,
		dataset:     dataset,
		metadata:    metadata,
		registry:    registry,
		resultsDir:  resultsDir,
		cancels:     make(map[string]context.CancelFunc),
	}
}

var _ httpapi.RunService = (*RunService)(nil)

// StartRun implements httpapi.RunService: it launches the run in its own
// goroutine (the HTTP handler returns {run_id} immediately), publishing
// every lifecycle event under the same runID the caller already
// registered stream with.
func (s *RunService) StartRun(_ context.Context, runID string, req httpapi.RunRequest, stream *eventbus.Stream) {
	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancels[runID] = cancel
	s.mu.Unlock()

	obs := NewEventObserver(runID, stream)

	var opts []orchestrator.RunOption
	if req.NumQuestions > 0 {
		opts = append(opts, orchestrator.WithQuestionCount(req.NumQuestions))
	}
	if level := domain.DifficultyLevel(req.Difficulty); level != "" && req.Difficulty != "all" {
		opts = append(opts, orchestrator.WithDifficultyFilter(level))
	}

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.cancels, runID)
			s.mu.Unlock()
			s.registry.Retire(runID, eventbus.DefaultGracePeriod)
		}()

		timestamp := runTimestamp()
		report, err := s.engine.Run(runCtx, s.datasetName, timestamp, s.dataset, s.metadata, obs, opts...)
		if err != nil {
			stream.Publish(domain.Event{
				RunID:     runID,
				Type:      domain.EventError,
				Timestamp: time.Now(),
				Payload:   domain.ErrorPayload{Message: err.Error(), Fatal: true},
			})
			stream.Close()
			return
		}
		if s.resultsDir != "" {
			_ = datasetio.SaveReport(resultsPath(s.resultsDir, timestamp), report)
		}
	}()
}

// Cancel cooperatively cancels an in-flight run: its context is
// cancelled, any in-flight LLM calls complete but their
// results are discarded by the caller seeing ctx.Err(), and the affected
// critic loops transition to GIVE_UP. Cancel is a no-op for an unknown or
// already-finished run ID.
func (s *RunService) Cancel(runID string) {
	s.mu.Lock()
	cancel, ok := s.cancels[runID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

func runTimestamp() string { return time.Now().UTC().Format(time.RFC3339) }
