// Package ports defines the boundary interfaces of the workflow core:
// external collaborators (search, generation), checkpoint persistence and
// distributed locking. Adapters implement these interfaces; the core only
// depends on them, never on a concrete backend.
package ports
