package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/FabioCLima/healthbot-project/internal/logging"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
)

// StepFunc is a pure transformation: state in, partial update out. Steps
// never mutate the input state. External-call steps fail atomically: on
// error they return a nil update so retrying with unchanged state is safe.
type StepFunc func(ctx context.Context, state *domain.State) (*domain.Update, error)

// Steps bundles the step functions with their collaborators. Collaborators
// are injected at construction so every step stays independently testable.
type Steps struct {
	search    ports.SearchProvider
	generator ports.Generator
	logger    *slog.Logger

	// maxSources caps how many search snippets feed the summary.
	maxSources int
}

// NewSteps creates the step set with the given collaborators.
func NewSteps(search ports.SearchProvider, generator ports.Generator, logger *slog.Logger) *Steps {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Steps{
		search:     search,
		generator:  generator,
		logger:     logger,
		maxSources: 3,
	}
}

// AskTopic opens a topic iteration by prompting for a health topic.
func (s *Steps) AskTopic(ctx context.Context, state *domain.State) (*domain.Update, error) {
	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: topicPrompt}},
	}, nil
}

// ReceiveTopic extracts the topic from the latest user message and confirms.
// A blank reply is recoverable: the step records the empty topic with a
// clarification message and the router re-prompts instead of searching.
func (s *Steps) ReceiveTopic(ctx context.Context, state *domain.State) (*domain.Update, error) {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleUser {
		return nil, fmt.Errorf("%w: receive_topic requires a user message", domain.ErrInvalidResume)
	}
	topic := strings.TrimSpace(last.Content)
	s.logger.Debug("topic received", "run_id", state.RunID, "topic", topic)

	if topic == "" {
		return &domain.Update{
			Topic:    domain.String(""),
			Messages: []domain.Message{{Role: domain.RoleAssistant, Content: clarifyTopicPrompt}},
		}, nil
	}

	confirmation := fmt.Sprintf(
		"Got it! I'll search for reliable information about **%s**. Please wait a moment...", topic)
	return &domain.Update{
		Topic:    domain.String(topic),
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: confirmation}},
	}, nil
}

// SearchTopic queries the search collaborator for trustworthy material on
// the current topic. Zero results is a recoverable outcome recorded in
// HasResults, not an error.
func (s *Steps) SearchTopic(ctx context.Context, state *domain.State) (*domain.Update, error) {
	if state.Topic == "" {
		return nil, &domain.StepError{Step: domain.StepSearchTavily, Err: fmt.Errorf("no topic set")}
	}

	query := state.Topic + " reliable medical information"
	results, err := s.search.Search(ctx, query)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepSearchTavily, Err: err}
	}
	if len(results) > s.maxSources {
		results = results[:s.maxSources]
	}

	s.logger.Info("search completed", "run_id", state.RunID, "topic", state.Topic, "sources", len(results))

	return &domain.Update{
		SearchResults: domain.Results(results),
		HasResults:    domain.Bool(len(results) > 0),
		SourcesCount:  domain.Int(len(results)),
	}, nil
}

// HandleNoResults produces a fallback message suggesting how to rephrase,
// then the flow loops back to asking for a topic.
func (s *Steps) HandleNoResults(ctx context.Context, state *domain.State) (*domain.Update, error) {
	msg := fmt.Sprintf(
		"I couldn't find reliable medical information about **%s**.\n\n"+
			"This might be because:\n"+
			"- The topic name is too specific or uncommon\n"+
			"- There might be a typo in the topic name\n"+
			"- The topic might need to be more general\n\n"+
			"Suggestions:\n"+
			"- Try a more general term (e.g., 'diabetes' instead of 'diabetes type 1 management in elderly patients')\n"+
			"- Check for spelling errors\n"+
			"- Try related health topics\n\n"+
			"Let's try a different health topic.", state.Topic)

	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: msg}},
		// Clear topic-scoped fields so the next iteration starts clean.
		ResetTopic: true,
	}, nil
}

// Summarize generates a plain-language summary using only the search
// results of the current topic iteration as source material.
func (s *Steps) Summarize(ctx context.Context, state *domain.State) (*domain.Update, error) {
	if !state.HasResults || len(state.SearchResults) == 0 {
		return nil, &domain.StepError{Step: domain.StepSummarize, Err: fmt.Errorf("no search results to summarize")}
	}

	userPrompt := fmt.Sprintf(
		"Create an educational summary about **%s** based on these sources:\n\n%s",
		state.Topic, formatResults(state.SearchResults))

	summary, err := s.generator.Generate(ctx, summarySystemPrompt, userPrompt)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepSummarize, Err: err}
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, &domain.StepError{Step: domain.StepSummarize, Err: domain.ErrMalformedOutput}
	}

	s.logger.Info("summary generated", "run_id", state.RunID, "chars", len(summary))
	return &domain.Update{Summary: domain.String(summary)}, nil
}

// PresentSummary appends the summary to the transcript.
func (s *Steps) PresentSummary(ctx context.Context, state *domain.State) (*domain.Update, error) {
	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: state.Summary}},
	}, nil
}

// CreateQuiz generates one multiple-choice question derived strictly from
// the summary.
func (s *Steps) CreateQuiz(ctx context.Context, state *domain.State) (*domain.Update, error) {
	if state.Summary == "" {
		return nil, &domain.StepError{Step: domain.StepCreateQuiz, Err: fmt.Errorf("no summary to quiz on")}
	}

	userPrompt := fmt.Sprintf(
		"Create a multiple choice question about **%s** based on this summary:\n\n%s\n\n"+
			"Remember: Only output the question and four alternatives. Do NOT reveal the correct answer!",
		state.Topic, state.Summary)

	question, err := s.generator.Generate(ctx, quizSystemPrompt, userPrompt)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepCreateQuiz, Err: err}
	}
	question = strings.TrimSpace(question)
	if countChoices(question) < 2 {
		return nil, &domain.StepError{Step: domain.StepCreateQuiz, Err: fmt.Errorf("%w: quiz needs at least two labeled choices", domain.ErrMalformedOutput)}
	}

	return &domain.Update{QuizQuestion: domain.String(question)}, nil
}

// PresentQuiz appends the quiz question and answer instructions.
func (s *Steps) PresentQuiz(ctx context.Context, state *domain.State) (*domain.Update, error) {
	content := fmt.Sprintf(
		"Now let's test your understanding!\n\n%s\n\n"+
			"Type the letter of the alternative you consider correct (A, B, C or D):",
		state.QuizQuestion)

	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: content}},
	}, nil
}

// ReceiveAnswer extracts the raw answer from the latest user message and
// normalizes it. An unrecognized answer is recorded as the sentinel and the
// router sends the flow back to the quiz prompt instead of grading it.
func (s *Steps) ReceiveAnswer(ctx context.Context, state *domain.State) (*domain.Update, error) {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleUser {
		return nil, fmt.Errorf("%w: receive_answer requires a user message", domain.ErrInvalidResume)
	}

	normalized := NormalizeAnswer(last.Content)
	s.logger.Debug("answer received", "run_id", state.RunID, "raw", last.Content, "normalized", normalized)

	update := &domain.Update{QuizAnswer: domain.String(normalized)}
	if normalized == AnswerUnrecognized {
		update.Messages = []domain.Message{{Role: domain.RoleAssistant, Content: clarifyAnswerPrompt}}
	}
	return update, nil
}

// gradePayload mirrors the JSON shape requested from the model. Decoding is
// deliberately weakly typed: models occasionally return the score as a
// string or a float.
type gradePayload struct {
	Score     int      `mapstructure:"score"`
	Feedback  string   `mapstructure:"feedback"`
	Citations []string `mapstructure:"citations"`
}

// GradeAnswer evaluates the normalized answer using only the summary as
// ground truth. A parse failure is a step failure, never a zero score.
func (s *Steps) GradeAnswer(ctx context.Context, state *domain.State) (*domain.Update, error) {
	if state.QuizAnswer == "" || state.Summary == "" {
		return nil, &domain.StepError{Step: domain.StepGradeAnswer, Err: fmt.Errorf("missing answer or summary")}
	}

	userPrompt := fmt.Sprintf(
		"QUESTION:\n%s\n\nSTUDENT'S ANSWER: %s\n\n"+
			"EDUCATIONAL SUMMARY (basis for evaluation):\n%s\n\n"+
			"Evaluate the answer and return in JSON format.",
		state.QuizQuestion, state.QuizAnswer, state.Summary)

	raw, err := s.generator.Generate(ctx, gradeSystemPrompt, userPrompt)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepGradeAnswer, Err: err}
	}

	grade, err := parseGrade(raw)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepGradeAnswer, Err: err}
	}

	s.logger.Info("answer graded", "run_id", state.RunID, "score", grade.Score)
	return &domain.Update{Grade: grade}, nil
}

// PresentGrade appends the score, feedback and citations to the transcript.
func (s *Steps) PresentGrade(ctx context.Context, state *domain.State) (*domain.Update, error) {
	grade := state.Grade
	if grade == nil {
		return nil, &domain.StepError{Step: domain.StepPresentGrade, Err: fmt.Errorf("no grade to present")}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Score: %d/10**\n\n**Feedback:**\n%s\n", grade.Score, grade.Feedback)
	if len(grade.Citations) > 0 {
		b.WriteString("\n**Relevant excerpts from the summary:**\n")
		for i, citation := range grade.Citations {
			fmt.Fprintf(&b, "%d. %q\n", i+1, citation)
		}
	}
	switch {
	case grade.Score >= 7:
		b.WriteString("\nCongratulations! You demonstrated good understanding of the topic!")
	case grade.Score >= 5:
		b.WriteString("\nYou're on the right track! Review some points.")
	default:
		b.WriteString("\nDon't be discouraged! Review the summary and keep learning.")
	}

	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: b.String()}},
	}, nil
}

// AskContinue asks whether to loop with a new topic or end the session.
func (s *Steps) AskContinue(ctx context.Context, state *domain.State) (*domain.Update, error) {
	return &domain.Update{
		Messages: []domain.Message{{Role: domain.RoleAssistant, Content: continuePrompt}},
	}, nil
}

// ReceiveContinue interprets the user's loop-or-exit decision. On continue,
// topic-scoped fields are reset while the transcript and run ID persist.
func (s *Steps) ReceiveContinue(ctx context.Context, state *domain.State) (*domain.Update, error) {
	last := state.LastMessage()
	if last == nil || last.Role != domain.RoleUser {
		return nil, fmt.Errorf("%w: receive_continue requires a user message", domain.ErrInvalidResume)
	}

	wantsMore := NormalizeContinue(last.Content)
	s.logger.Debug("continuation received", "run_id", state.RunID, "continue", wantsMore)

	update := &domain.Update{ContinueSession: domain.Bool(wantsMore)}
	if wantsMore {
		update.ResetTopic = true
	}
	return update, nil
}

// formatResults renders search snippets into the numbered source block the
// summary prompt expects.
func formatResults(results []domain.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "\n--- Source %d ---\nURL: %s\nContent: %s\n", i+1, r.Source, r.Content)
	}
	return b.String()
}

// countChoices counts distinct "X)" choice labels in a quiz question.
func countChoices(question string) int {
	count := 0
	for _, label := range []string{"A)", "B)", "C)", "D)"} {
		if strings.Contains(question, label) {
			count++
		}
	}
	return count
}

// parseGrade decodes the model's JSON evaluation, tolerating markdown code
// fences and loosely typed fields.
func parseGrade(raw string) (*domain.Grade, error) {
	text := stripCodeFences(strings.TrimSpace(raw))

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}
	for _, key := range []string{"score", "feedback", "citations"} {
		if _, ok := payload[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q field", domain.ErrMalformedOutput, key)
		}
	}

	var decoded gradePayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}

	if decoded.Score < 0 || decoded.Score > 10 {
		return nil, fmt.Errorf("%w: score %d out of range", domain.ErrMalformedOutput, decoded.Score)
	}
	if len(decoded.Citations) == 0 {
		return nil, fmt.Errorf("%w: evaluation carries no citations", domain.ErrMalformedOutput)
	}

	return &domain.Grade{
		Score:     decoded.Score,
		Feedback:  decoded.Feedback,
		Citations: decoded.Citations,
	}, nil
}

// stripCodeFences removes a leading ```json / ``` fence pair if present.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
