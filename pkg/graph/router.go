package graph

import "github.com/FabioCLima/healthbot-project/pkg/domain"

// Outcome is the label a decision function produces. Outcomes index the
// conditional edge table; the decision functions themselves stay pure and
// separately testable from the table lookup.
type Outcome string

const (
	OutcomeContinue     Outcome = "continue"
	OutcomeEnd          Outcome = "end"
	OutcomeResults      Outcome = "results"
	OutcomeNoResults    Outcome = "no_results"
	OutcomeRecognized   Outcome = "recognized"
	OutcomeUnrecognized Outcome = "unrecognized"
)

// TopicOutcome decides, after receiving a topic, whether the flow proceeds
// to the search or pauses again because the reply was blank.
func TopicOutcome(state *domain.State) Outcome {
	if state.Topic == "" {
		return OutcomeUnrecognized
	}
	return OutcomeRecognized
}

// ResultsOutcome decides, after the search step, whether the flow proceeds
// to summarization or to the no-results handler.
func ResultsOutcome(state *domain.State) Outcome {
	if state.HasResults {
		return OutcomeResults
	}
	return OutcomeNoResults
}

// AnswerOutcome decides, after receiving a quiz answer, whether the flow
// proceeds to grading or re-presents the quiz for an unrecognized answer.
func AnswerOutcome(state *domain.State) Outcome {
	if state.QuizAnswer == AnswerUnrecognized || state.QuizAnswer == "" {
		return OutcomeUnrecognized
	}
	return OutcomeRecognized
}

// ContinueOutcome decides, after the continuation question, whether to loop
// with a new topic or terminate. Deterministic, total, side-effect free.
func ContinueOutcome(state *domain.State) Outcome {
	if state.ContinueSession {
		return OutcomeContinue
	}
	return OutcomeEnd
}
