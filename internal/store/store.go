// Package store implements the redirect log on top of a git commit history:
// one commit per redirect, all state in the message, identifiers derived
// from commit hashes.
package store

import (
	"errors"

	"github.com/gitly/gitly/internal/config"
	"github.com/gitly/gitly/internal/git"
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/shortid"
)

// Git defines the repository operations required by the store.
// *git.Repo is the real implementation; tests substitute mocks.
type Git interface {
	CurrentBranch() (string, error)
	Head() (string, error)
	HasStagedChanges() (bool, error)
	HasConflicts() (bool, error)
	SequencerActive() (bool, error)
	Log(from, until string, oldestFirst bool) ([]git.Commit, error)
	CommitInfo(sha string) (*git.Commit, error)
	CommitMessage(message string) (string, error)
	ResolveCommitPrefix(prefix string) (string, error)
	CommitsWithPrefix(prefix string) ([]string, error)
	ObjectType(sha string) (string, error)
	Push(remote, branch string) error
	Fetch(remote, branch string) error
	MergeRemoteBranch(remote, branch string) error
}

// Store provides read and append access to the redirect log.
type Store struct {
	git    Git
	branch string
	remote string
}

// Open opens the repository named by the config and returns a Store bound
// to its tracked branch and remote.
func Open(cfg config.Config) (*Store, error) {
	repo, err := git.Open(cfg.Repository)
	if err != nil {
		return nil, err
	}
	return New(repo, cfg.Branch, cfg.Remote), nil
}

// New creates a Store over the given git operations.
func New(ops Git, branch, remote string) *Store {
	return &Store{git: ops, branch: branch, remote: remote}
}

// Get resolves a canonical or short id to its redirect.
// Returns a user error when the id decodes to nothing, resolves to no
// commit, or resolves to a commit that is not a record.
func (s *Store) Get(id string) (*redirect.Redirect, error) {
	hexPrefix, err := shortid.DecodeToHex(id)
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid id: "+id, err)
	}

	sha, err := s.resolveHexPrefix(hexPrefix)
	if err != nil {
		return nil, err
	}
	if sha == "" {
		return nil, output.NewUserError("redirect not found: " + id)
	}

	commit, err := s.git.CommitInfo(sha)
	if err != nil {
		return nil, err
	}

	rec, err := s.decodeCommit(commit)
	if errors.Is(err, redirect.ErrNotARecord) {
		// The commit exists but carries no record (e.g. a merge).
		return nil, output.NewUserError("redirect not found: " + id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeCommit turns a commit into a redirect via the codec and the
// identifier engine. Returns redirect.ErrNotARecord for non-record commits.
func (s *Store) decodeCommit(commit *git.Commit) (*redirect.Redirect, error) {
	fields, err := redirect.DecodeMessage(commit.Message)
	if err != nil {
		return nil, err
	}

	id, err := shortid.Canonical(commit.SHA)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("deriving id for "+commit.SHA, err)
	}
	short, err := shortid.Shortest(commit.SHA, s.uniqueResolve)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("deriving short id for "+commit.SHA, err)
	}

	return &redirect.Redirect{
		ID:          id,
		Short:       short,
		URL:         fields.URL,
		Description: fields.Description,
		Created:     commit.Date,
		Creator:     commit.Author,
		Meta:        fields.Meta,
	}, nil
}

// uniqueResolve is the identifier engine's uniqueness probe: only a direct,
// unambiguous store lookup counts. An ambiguous prefix resolves to nothing
// here, forcing the engine onto a longer prefix.
func (s *Store) uniqueResolve(prefix string) (string, error) {
	sha, err := s.git.ResolveCommitPrefix(prefix)
	if errors.Is(err, git.ErrAmbiguousPrefix) {
		return "", nil
	}
	return sha, err
}
