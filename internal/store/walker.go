package store

import (
	"errors"
	"io"

	"github.com/gitly/gitly/internal/git"
	"github.com/gitly/gitly/internal/redirect"
)

// WalkOptions bounds a history walk. Until defaults to the tracked branch
// tip; From defaults to unbounded (all history reachable from Until).
// From is exclusive, Until inclusive.
type WalkOptions struct {
	From  string
	Until string
}

// Walker is a pull iterator over the record stream, oldest first.
// It is finite, decodes lazily, and is not restartable; a fresh Walk
// re-reads history from scratch.
type Walker struct {
	store   *Store
	commits []git.Commit
	idx     int
}

// Walk lists the commit range time-ascending and returns a Walker over it.
func (s *Store) Walk(opts WalkOptions) (*Walker, error) {
	until := opts.Until
	if until == "" {
		until = s.branch
	}

	commits, err := s.git.Log(opts.From, until, true)
	if err != nil {
		return nil, err
	}

	return &Walker{store: s, commits: commits}, nil
}

// Next returns the next redirect in the walk. Commits that do not decode
// as records (merges, foreign history) are skipped silently; the walk
// itself never fails on an individual bad commit. Returns io.EOF when the
// range is exhausted — a normal terminal signal, not a failure.
func (w *Walker) Next() (*redirect.Redirect, error) {
	for w.idx < len(w.commits) {
		commit := w.commits[w.idx]
		w.idx++

		rec, err := w.store.decodeCommit(&commit)
		if errors.Is(err, redirect.ErrNotARecord) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, io.EOF
}

// All drains the walker and returns the remaining redirects.
func (w *Walker) All() ([]*redirect.Redirect, error) {
	var records []*redirect.Redirect
	for {
		rec, err := w.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}
