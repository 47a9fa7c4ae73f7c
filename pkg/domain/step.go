package domain

// StepID names one phase of the conversation workflow.
type StepID string

const (
	StepAskTopic        StepID = "ask_topic"
	StepReceiveTopic    StepID = "receive_topic"
	StepSearchTavily    StepID = "search_tavily"
	StepHandleNoResults StepID = "handle_no_results"
	StepSummarize       StepID = "summarize"
	StepPresentSummary  StepID = "present_summary"
	StepCreateQuiz      StepID = "create_quiz"
	StepPresentQuiz     StepID = "present_quiz"
	StepReceiveAnswer   StepID = "receive_answer"
	StepGradeAnswer     StepID = "grade_answer"
	StepPresentGrade    StepID = "present_grade"
	StepAskContinue     StepID = "ask_continue"
	StepReceiveContinue StepID = "receive_continue"

	// StepEnd is the terminal marker. It is never executed; reaching it
	// flips the session to StatusTerminated.
	StepEnd StepID = "end"
)
