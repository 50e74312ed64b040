// Package git provides Git operations via exec for the gitly store.
// All operations are bound to an explicit repository directory; nothing
// reads ambient process state beyond the git binary itself.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gitly/gitly/internal/output"
)

// Repo is a handle to a local git repository.
type Repo struct {
	dir string
}

// Open returns a Repo bound to the repository at dir.
// Returns a system error if dir is not inside a git repository.
func Open(dir string) (*Repo, error) {
	repo := &Repo{dir: dir}
	if _, err := repo.Run("rev-parse", "--git-dir"); err != nil {
		return nil, output.NewSystemErrorWithCause("not a git repository: "+dir, err)
	}
	return repo, nil
}

// Dir returns the directory the repository was opened with.
func (r *Repo) Dir() string {
	return r.dir
}

// Run executes a git command against the repository.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with the git stderr as message.
func (r *Repo) Run(args ...string) (string, error) {
	return r.RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context.
func (r *Repo) RunContext(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", r.dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// CurrentBranch returns the name of the currently checked-out branch.
// Returns an error if HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	branch, err := r.Run("symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch (detached HEAD?)", err)
	}
	return branch, nil
}

// Head returns the full SHA of the current HEAD commit, or "" if the
// repository has no commits yet.
func (r *Repo) Head() (string, error) {
	sha, err := r.Run("rev-parse", "--verify", "--quiet", "HEAD")
	if err != nil {
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", err
	}
	return sha, nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges() (bool, error) {
	out, err := r.Run("diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HasConflicts reports whether the index contains unmerged entries.
func (r *Repo) HasConflicts() (bool, error) {
	out, err := r.Run("ls-files", "--unmerged")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// SequencerActive reports whether a merge, rebase, or cherry-pick is in
// progress, by probing the sequencer state paths under the git dir.
func (r *Repo) SequencerActive() (bool, error) {
	states := []string{"MERGE_HEAD", "CHERRY_PICK_HEAD", "REBASE_HEAD", "rebase-merge", "rebase-apply"}
	for _, state := range states {
		path, err := r.Run("rev-parse", "--git-path", state)
		if err != nil {
			return false, err
		}
		// --git-path output is relative to the repository directory.
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.dir, path)
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return true, nil
		}
	}
	return false, nil
}
