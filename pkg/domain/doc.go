// Package domain holds the core types of the conversation workflow:
// the session State, the partial Update produced by each step, the step
// identifiers, the error taxonomy and the lifecycle events.
//
// The package has no dependencies on the executor or any adapter; it is
// the shared vocabulary between them.
package domain
