package git

import (
	"errors"
	"strings"

	"github.com/gitly/gitly/internal/output"
)

// ErrNonFastForward is returned when a push is rejected because the remote
// tip is not an ancestor of the local tip. Callers reconcile with
// fetch+merge and retry; any other push failure is final.
var ErrNonFastForward = errors.New("push rejected: not a fast-forward")

// Push pushes the branch to the named remote.
func (r *Repo) Push(remote, branch string) error {
	_, err := r.Run("push", remote, branch)
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "non-fast-forward") || strings.Contains(msg, "fetch first") {
		return ErrNonFastForward
	}
	return output.NewSystemErrorWithCause("failed to push "+branch+" to "+remote, err)
}

// Fetch updates the remote-tracking ref for the branch from the named
// remote. The explicit refspec pins the standard refs/remotes/ layout.
func (r *Repo) Fetch(remote, branch string) error {
	refspec := "+refs/heads/" + branch + ":refs/remotes/" + remote + "/" + branch
	if _, err := r.Run("fetch", remote, refspec); err != nil {
		return output.NewSystemErrorWithCause("failed to fetch "+branch+" from "+remote, err)
	}
	return nil
}

// MergeRemoteBranch merges the remote-tracking ref for branch into the
// currently checked-out branch.
func (r *Repo) MergeRemoteBranch(remote, branch string) error {
	ref := "refs/remotes/" + remote + "/" + branch
	if _, err := r.Run("merge", "--no-edit", ref); err != nil {
		return output.NewSystemErrorWithCause("failed to merge "+ref, err)
	}
	return nil
}
