package form

import (
	"context"
	"time"

	"malladmin/internal/core/entity"
)

// DefaultCommitDelay mirrors the latency of the backend call the commit stands in for.
const DefaultCommitDelay = 500 * time.Millisecond

// SimulatedCommitter waits Delay and succeeds. Once started it is not
// cancellable: the context is ignored.
type SimulatedCommitter struct {
	Delay time.Duration
}

// Commit implements Committer.
func (c SimulatedCommitter) Commit(_ context.Context, _ entity.Record, _ entity.CommitMode) error {
	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}
	return nil
}

// CommitterFunc adapts a function to Committer.
type CommitterFunc func(ctx context.Context, rec entity.Record, mode entity.CommitMode) error

// Commit implements Committer.
func (f CommitterFunc) Commit(ctx context.Context, rec entity.Record, mode entity.CommitMode) error {
	return f(ctx, rec, mode)
}
