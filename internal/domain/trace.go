package domain

// ConversationRole tags a ConversationMessage with who produced it, for
// the audit log carried in QuestionTrace.
type ConversationRole string

const (
	RoleSystem  ConversationRole = "system"
	RoleBuilder ConversationRole = "builder"
	RoleCritic  ConversationRole = "critic"
)

// ConversationMessage is one entry in a QuestionTrace's audit log.
type ConversationMessage struct {
	Role    ConversationRole `json:"role"`
	Content string           `json:"content"`
}

// QuestionTrace is the full audit trail the critic loop accumulates for a
// single Question: every DAG it ever built, every piece of feedback the
// critic returned, the final execution outcome (or nil if the loop gave
// up), and a role-tagged conversation log.
type QuestionTrace struct {
	Question        Question              `json:"question"`
	DAGHistory      []GeneratedDAG        `json:"dag_history"`
	FeedbackHistory []CriticFeedback      `json:"feedback_history"`
	ExecutionResult *ExecutionResult      `json:"execution_result,omitempty"`
	TotalIterations int                   `json:"total_iterations"`
	Messages        []ConversationMessage `json:"messages"`
}

// Succeeded reports whether this trace ended in a successful execution.
func (t QuestionTrace) Succeeded() bool {
	return t.ExecutionResult != nil && t.ExecutionResult.Success
}
