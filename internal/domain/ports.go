package domain

import "context"

// ChangeSource returns the files modified between two commit references,
// with content at the target commit. Implementations exist for a local git
// repository and for a remote hosting API; the core is indifferent to which
// one supplies the list.
type ChangeSource interface {
	Changes(ctx context.Context, before, after string) ([]ChangedFile, error)
}

// FlagRegistry fetches the full flag snapshot for one project. A failure
// here is fatal to the run: governance verdicts over a partial registry
// would be silently wrong.
type FlagRegistry interface {
	Fetch(ctx context.Context) (*Registry, error)
}
