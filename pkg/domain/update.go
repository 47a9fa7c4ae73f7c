package domain

// Update is the partial state change produced by a single step. Nil pointer
// fields leave the corresponding state field untouched; Messages are always
// appended, never replaced. The executor applies updates atomically: a step
// either returns a complete Update or an error, never both.
type Update struct {
	Messages []Message

	Topic           *string
	SearchResults   *[]SearchResult
	HasResults      *bool
	SourcesCount    *int
	Summary         *string
	QuizQuestion    *string
	QuizAnswer      *string
	Grade           *Grade
	ContinueSession *bool

	// ResetTopic clears every topic-scoped field before the rest of the
	// update is applied. Messages and RunID are preserved, so the
	// transcript keeps accumulating across topic iterations.
	ResetTopic bool
}

// Apply merges the update into the state. List-valued fields append,
// scalar fields overwrite.
func (u *Update) Apply(s *State) {
	if u == nil {
		return
	}
	if u.ResetTopic {
		s.Topic = ""
		s.SearchResults = nil
		s.HasResults = false
		s.SourcesCount = 0
		s.Summary = ""
		s.QuizQuestion = ""
		s.QuizAnswer = ""
		s.Grade = nil
	}
	s.Messages = append(s.Messages, u.Messages...)
	if u.Topic != nil {
		s.Topic = *u.Topic
	}
	if u.SearchResults != nil {
		s.SearchResults = *u.SearchResults
	}
	if u.HasResults != nil {
		s.HasResults = *u.HasResults
	}
	if u.SourcesCount != nil {
		s.SourcesCount = *u.SourcesCount
	}
	if u.Summary != nil {
		s.Summary = *u.Summary
	}
	if u.QuizQuestion != nil {
		s.QuizQuestion = *u.QuizQuestion
	}
	if u.QuizAnswer != nil {
		s.QuizAnswer = *u.QuizAnswer
	}
	if u.Grade != nil {
		s.Grade = u.Grade
	}
	if u.ContinueSession != nil {
		s.ContinueSession = *u.ContinueSession
	}
}

// Pointer helpers for building updates.

func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }

func Results(v []SearchResult) *[]SearchResult { return &v }
