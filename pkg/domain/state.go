package domain

// Status defines the current mode of the conversation executor.
type Status string

const (
	// StatusActive means the executor can advance without external input.
	StatusActive Status = "active"
	// StatusWaitingForInput means the executor is paused at a pause point,
	// waiting for the caller to supply a new user message.
	StatusWaitingForInput Status = "waiting_for_input"
	// StatusTerminated means the end step was reached.
	StatusTerminated Status = "terminated"
)

// Role tags a conversation message with its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry in the conversation transcript.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SearchResult is one snippet returned by the search collaborator.
type SearchResult struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// Grade is the structured result of evaluating a quiz answer.
// Citations are excerpts drawn from the summary that justify the score.
type Grade struct {
	Score     int      `json:"score"`
	Feedback  string   `json:"feedback"`
	Citations []string `json:"citations"`
}

// State is the single record threaded through every step of a session.
// It is owned exclusively by the executor during a run; steps receive it
// read-only and communicate via Update.
type State struct {
	// RunID identifies the session. Generated once at start, constant for
	// the session's lifetime, used for checkpoint keys and log correlation.
	RunID string `json:"run_id"`

	// CurrentStep is the identifier of the step the executor will run next.
	CurrentStep StepID `json:"current_step"`

	// Status indicates whether the executor is running, paused, or done.
	Status Status `json:"status"`

	// Messages is the append-only conversation transcript. It accumulates
	// across topic iterations within a session.
	Messages []Message `json:"messages"`

	// Topic-scoped fields. Reset on loop restart, see Update.ResetTopic.
	Topic         string         `json:"topic"`
	SearchResults []SearchResult `json:"search_results"`
	HasResults    bool           `json:"has_results"`
	SourcesCount  int            `json:"sources_count"`
	Summary       string         `json:"summary"`
	QuizQuestion  string         `json:"quiz_question"`
	QuizAnswer    string         `json:"quiz_answer"`
	Grade         *Grade         `json:"grade,omitempty"`

	// ContinueSession records the user's loop-or-exit decision.
	ContinueSession bool `json:"continue_session"`
}

// NewState creates a clean session state positioned at the entry step.
func NewState(runID string, entry StepID) *State {
	return &State{
		RunID:       runID,
		CurrentStep: entry,
		Status:      StatusActive,
		Messages:    []Message{},
	}
}

// Clone returns a deep copy of the state so callers can mutate the copy
// without affecting the original.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	if s.Messages != nil {
		next.Messages = make([]Message, len(s.Messages))
		copy(next.Messages, s.Messages)
	}
	if s.SearchResults != nil {
		next.SearchResults = make([]SearchResult, len(s.SearchResults))
		copy(next.SearchResults, s.SearchResults)
	}
	if s.Grade != nil {
		grade := *s.Grade
		if s.Grade.Citations != nil {
			grade.Citations = make([]string, len(s.Grade.Citations))
			copy(grade.Citations, s.Grade.Citations)
		}
		next.Grade = &grade
	}
	return &next
}

// LastMessage returns the most recent transcript entry, or nil when the
// transcript is empty.
func (s *State) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
