// Package healthbot is a conversational health-education workflow: it
// guides a user through picking a health topic, searches trustworthy
// sources, summarizes them in patient-friendly language, quizzes the user
// on the summary and grades the answer, optionally looping to a new topic.
//
// The core is a fixed finite-state conversation graph (see pkg/graph)
// driven over a single typed conversation state (pkg/domain). External
// collaborators (search and text generation) are injected through
// pkg/ports interfaces; adapters for Tavily and OpenAI live under
// pkg/adapters, alongside memory, file and Redis checkpoint stores and an
// HTTP session API.
package healthbot
