package graph

import "github.com/FabioCLima/healthbot-project/pkg/domain"

// conditionalEdge pairs a pure decision function with a lookup table from
// its outcomes to the next step.
type conditionalEdge struct {
	decide  func(*domain.State) Outcome
	targets map[Outcome]domain.StepID
}

// fixedEdges are the unconditional transitions of the workflow.
var fixedEdges = map[domain.StepID]domain.StepID{
	domain.StepAskTopic:        domain.StepReceiveTopic,
	domain.StepHandleNoResults: domain.StepAskTopic,
	domain.StepSummarize:       domain.StepPresentSummary,
	domain.StepPresentSummary:  domain.StepCreateQuiz,
	domain.StepCreateQuiz:      domain.StepPresentQuiz,
	domain.StepPresentQuiz:     domain.StepReceiveAnswer,
	domain.StepGradeAnswer:     domain.StepPresentGrade,
	domain.StepPresentGrade:    domain.StepAskContinue,
	domain.StepAskContinue:     domain.StepReceiveContinue,
}

// conditionalEdges are the dynamic transitions: topic validity, search
// outcome, answer recognition, and the loop-or-exit decision.
var conditionalEdges = map[domain.StepID]conditionalEdge{
	// A blank topic loops straight back to the same pause point so the
	// clarification message becomes the next prompt. Searching an empty
	// topic would fail on every retry with no way to supply new input.
	domain.StepReceiveTopic: {
		decide: TopicOutcome,
		targets: map[Outcome]domain.StepID{
			OutcomeRecognized:   domain.StepSearchTavily,
			OutcomeUnrecognized: domain.StepReceiveTopic,
		},
	},
	domain.StepSearchTavily: {
		decide: ResultsOutcome,
		targets: map[Outcome]domain.StepID{
			OutcomeResults:   domain.StepSummarize,
			OutcomeNoResults: domain.StepHandleNoResults,
		},
	},
	domain.StepReceiveAnswer: {
		decide: AnswerOutcome,
		targets: map[Outcome]domain.StepID{
			OutcomeRecognized:   domain.StepGradeAnswer,
			OutcomeUnrecognized: domain.StepPresentQuiz,
		},
	},
	domain.StepReceiveContinue: {
		decide: ContinueOutcome,
		targets: map[Outcome]domain.StepID{
			OutcomeContinue: domain.StepAskTopic,
			OutcomeEnd:      domain.StepEnd,
		},
	},
}

// pausePoints are the steps whose precondition is a fresh user message. The
// executor halts before running them and resumes only when the caller
// supplies new input.
var pausePoints = map[domain.StepID]bool{
	domain.StepReceiveTopic:    true,
	domain.StepReceiveAnswer:   true,
	domain.StepReceiveContinue: true,
}

// IsPausePoint reports whether a step requires caller-supplied input.
func IsPausePoint(step domain.StepID) bool {
	return pausePoints[step]
}

// nextStep resolves the transition leaving the given step after its update
// has been applied to the state.
func nextStep(step domain.StepID, state *domain.State) (domain.StepID, bool) {
	if edge, ok := conditionalEdges[step]; ok {
		target, ok := edge.targets[edge.decide(state)]
		return target, ok
	}
	target, ok := fixedEdges[step]
	return target, ok
}
