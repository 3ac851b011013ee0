package domain

import "time"

// EventType is one member of the closed taxonomy of lifecycle events a
// run may publish. No other string is a valid EventType.
type EventType string

const (
	EventRunStarted         EventType = "run_started"
	EventQuestionsGenerated EventType = "questions_generated"
	EventDAGBuilt           EventType = "dag_built"
	EventCriticResult       EventType = "critic_result"
	EventExecutionDone      EventType = "execution_done"
	EventQuestionComplete   EventType = "question_complete"
	EventRunComplete        EventType = "run_complete"
	EventError              EventType = "error"
)

// IsTerminal reports whether this EventType, on its own, ends a run's
// event stream. EventRunComplete always ends the stream. EventError only
// ends the stream when its ErrorPayload.Fatal is true — a non-fatal
// advisory (e.g. missing metadata) is carried as a non-terminal error
// event so the stream continues. Callers should check ErrorPayload.Fatal
// for EventError rather than relying on IsTerminal alone.
func (t EventType) IsTerminal() bool {
	return t == EventRunComplete
}

// Event is one entry on a run's event stream: a typed, timestamped
// payload tagged with the run it belongs to.
type Event struct {
	RunID     string    `json:"run_id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"ts"`
	Payload   any       `json:"payload"`
}

// RunStartedPayload accompanies EventRunStarted.
type RunStartedPayload struct {
	DatasetName  string `json:"dataset_name"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

// QuestionsGeneratedPayload accompanies EventQuestionsGenerated.
type QuestionsGeneratedPayload struct {
	Questions []Question `json:"questions"`
}

// DAGBuiltPayload accompanies EventDAGBuilt.
type DAGBuiltPayload struct {
	QuestionID string       `json:"question_id"`
	Iteration  int          `json:"iteration"`
	DAG        GeneratedDAG `json:"dag"`
}

// CriticResultPayload accompanies EventCriticResult.
type CriticResultPayload struct {
	QuestionID string         `json:"question_id"`
	Iteration  int            `json:"iteration"`
	Feedback   CriticFeedback `json:"feedback"`
}

// ExecutionDonePayload accompanies EventExecutionDone.
type ExecutionDonePayload struct {
	QuestionID string          `json:"question_id"`
	Result     ExecutionResult `json:"result"`
}

// QuestionCompletePayload accompanies EventQuestionComplete.
type QuestionCompletePayload struct {
	QuestionID string `json:"question_id"`
	Succeeded  bool   `json:"succeeded"`
	GaveUp     bool   `json:"gave_up"`
}

// RunCompletePayload accompanies EventRunComplete.
type RunCompletePayload struct {
	Report RunReport `json:"report"`
}

// ErrorPayload accompanies EventError. Fatal distinguishes a run-ending
// internal or validation error from a non-fatal advisory such as the
// ingest gate's missing-metadata warning.
type ErrorPayload struct {
	QuestionID string `json:"question_id,omitempty"`
	Message    string `json:"message"`
	Fatal      bool   `json:"fatal"`
}
