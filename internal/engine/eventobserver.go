package engine

import (
	"time"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
)

// EventObserver mirrors an orchestrator run's lifecycle onto an
// eventbus.Stream, letting internal/httpapi stay ignorant of the
// orchestrator/criticloop packages it never imports directly. now is
// injected so tests can supply a deterministic clock.
type EventObserver struct {
	runID  string
	stream *eventbus.Stream
	now    func() time.Time
}

// NewEventObserver returns an EventObserver publishing onto stream under
// runID.
func NewEventObserver(runID string, stream *eventbus.Stream) *EventObserver {
	return &EventObserver{runID: runID, stream: stream, now: time.Now}
}

func (o *EventObserver) publish(typ domain.EventType, payload any) {
	o.stream.Publish(domain.Event{
		RunID:     o.runID,
		Type:      typ,
		Timestamp: o.now(),
		Payload:   payload,
	})
}

// OnDAGBuilt implements criticloop.Observer.
func (o *EventObserver) OnDAGBuilt(questionID string, iteration int, dag domain.GeneratedDAG) {
	o.publish(domain.EventDAGBuilt, domain.DAGBuiltPayload{QuestionID: questionID, Iteration: iteration, DAG: dag})
}

// OnCriticResult implements criticloop.Observer.
func (o *EventObserver) OnCriticResult(questionID string, iteration int, feedback domain.CriticFeedback) {
	o.publish(domain.EventCriticResult, domain.CriticResultPayload{QuestionID: questionID, Iteration: iteration, Feedback: feedback})
}

// OnExecutionDone implements criticloop.Observer.
func (o *EventObserver) OnExecutionDone(questionID string, result domain.ExecutionResult) {
	o.publish(domain.EventExecutionDone, domain.ExecutionDonePayload{QuestionID: questionID, Result: result})
}

// OnRunStarted implements orchestrator.RunObserver.
func (o *EventObserver) OnRunStarted(datasetName string, numQuestions int) {
	o.publish(domain.EventRunStarted, domain.RunStartedPayload{DatasetName: datasetName, NumQuestions: numQuestions})
}

// OnQuestionsGenerated implements orchestrator.RunObserver.
func (o *EventObserver) OnQuestionsGenerated(questions []domain.Question) {
	o.publish(domain.EventQuestionsGenerated, domain.QuestionsGeneratedPayload{Questions: questions})
}

// OnMetadataMissing implements orchestrator.RunObserver.
func (o *EventObserver) OnMetadataMissing() {
	o.publish(domain.EventError, domain.ErrorPayload{Message: "metadata document missing or empty; proceeding with empty schema", Fatal: false})
}

// OnQuestionComplete implements orchestrator.RunObserver.
func (o *EventObserver) OnQuestionComplete(questionID string, succeeded, gaveUp bool) {
	o.publish(domain.EventQuestionComplete, domain.QuestionCompletePayload{QuestionID: questionID, Succeeded: succeeded, GaveUp: gaveUp})
}

// OnRunComplete implements orchestrator.RunObserver, publishing the
// terminal run_complete event. The Stream closes itself once this is
// published (domain.EventType.IsTerminal).
func (o *EventObserver) OnRunComplete(report domain.RunReport) {
	o.publish(domain.EventRunComplete, domain.RunCompletePayload{Report: report})
}
