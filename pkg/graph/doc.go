// Package graph implements the conversation workflow: the step functions,
// the input normalizer, the routing decisions with their edge tables, and
// the executor that drives a session from topic selection through search,
// summarization, quiz and grading, looping or terminating on the user's
// decision.
//
// Control flow is fixed: the executor follows the edge tables, pausing at
// the three receive steps until the caller supplies a new user message via
// the Session handle.
package graph
