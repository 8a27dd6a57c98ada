package operations

import "context"

// Step is a single unit of work in the cleaning pipeline. Steps receive the
// shared run state, read the artifacts earlier steps produced, and attach
// their own.
type Step interface {
	ID() string
	Name() string
	Execute(ctx context.Context, state *State) error
}
