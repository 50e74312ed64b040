package store

import (
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
)

// Create validates repository state, appends one record commit to the
// tracked branch, and returns the redirect read back through the decode
// path — the caller observes exactly what was persisted, including the
// computed short id. A rejected create leaves the branch tip unchanged.
func (s *Store) Create(fields redirect.Fields) (*redirect.Redirect, error) {
	if err := fields.Validate(); err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	if err := s.checkWriteState(); err != nil {
		return nil, err
	}

	message, err := redirect.EncodeMessage(fields)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("encoding record message", err)
	}

	sha, err := s.git.CommitMessage(message)
	if err != nil {
		return nil, err
	}

	commit, err := s.git.CommitInfo(sha)
	if err != nil {
		return nil, err
	}
	return s.decodeCommit(commit)
}

// checkWriteState enforces the append preconditions, in order. Each check
// produces a distinct conflict error; all run before any mutation.
func (s *Store) checkWriteState() error {
	branch, err := s.git.CurrentBranch()
	if err != nil {
		return err
	}
	if branch != s.branch {
		return output.NewConflictError("branch " + s.branch + " is not checked out (on " + branch + ")")
	}

	conflicts, err := s.git.HasConflicts()
	if err != nil {
		return err
	}
	if conflicts {
		return output.NewConflictError("index has unresolved merge conflicts")
	}

	// The new commit must inherit its parent's tree; anything staged would
	// leak into the record commit.
	staged, err := s.git.HasStagedChanges()
	if err != nil {
		return err
	}
	if staged {
		return output.NewConflictError("index has staged changes; commit or unstage them first")
	}

	head, err := s.git.Head()
	if err != nil {
		return err
	}
	if head == "" {
		return output.NewConflictError("repository has no commits on " + s.branch + "; create an initial commit first")
	}

	active, err := s.git.SequencerActive()
	if err != nil {
		return err
	}
	if active {
		return output.NewConflictError("a merge, rebase, or cherry-pick is in progress")
	}

	return nil
}
