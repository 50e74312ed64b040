package store

import (
	"errors"

	"github.com/gitly/gitly/internal/git"
	"github.com/gitly/gitly/internal/output"
)

// Sync pushes the tracked branch to the configured remote.
//
// A push rejected as non-fast-forward is reconciled once: fetch the remote
// branch, merge its tracking ref into the local branch, push again. Record
// commits all carry identical trees, so the merge is tree-conflict-free by
// construction. Any other failure, or a failure of the retried push, is
// final; persistent contention is the caller's problem to re-issue.
func (s *Store) Sync() error {
	err := s.git.Push(s.remote, s.branch)
	if err == nil {
		return nil
	}
	if !errors.Is(err, git.ErrNonFastForward) {
		return err
	}

	if err := s.git.Fetch(s.remote, s.branch); err != nil {
		return err
	}
	if err := s.git.MergeRemoteBranch(s.remote, s.branch); err != nil {
		return err
	}

	if err := s.git.Push(s.remote, s.branch); err != nil {
		return output.NewSystemErrorWithCause("push failed after merge retry", err)
	}
	return nil
}
