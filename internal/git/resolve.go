package git

import (
	"errors"
	"strings"
)

// ErrAmbiguousPrefix is returned when a hex prefix matches more than one
// object in the store. Ambiguity is detected here but not enumerated;
// callers fall back to CommitsWithPrefix for the candidate list.
var ErrAmbiguousPrefix = errors.New("ambiguous object prefix")

// ResolveCommitPrefix resolves a hex prefix (or full hash) to the full SHA
// of the commit it identifies. Returns "" with a nil error when nothing
// matches, and ErrAmbiguousPrefix when the prefix is shared.
func (r *Repo) ResolveCommitPrefix(prefix string) (string, error) {
	sha, err := r.Run("rev-parse", "--verify", prefix+"^{commit}")
	if err == nil {
		return sha, nil
	}

	msg := err.Error()
	if strings.Contains(msg, "is ambiguous") {
		return "", ErrAmbiguousPrefix
	}
	// Unknown revision, or the prefix names a non-commit object.
	return "", nil
}

// CommitsWithPrefix enumerates all reachable commit ids sharing the given
// hex prefix. This spawns a full history listing and is the expensive rare
// path behind ambiguous lookups; callers must validate the prefix before
// calling.
func (r *Repo) CommitsWithPrefix(prefix string) ([]string, error) {
	out, err := r.Run("rev-list", "--all")
	if err != nil {
		return nil, err
	}

	var matches []string
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && strings.HasPrefix(line, prefix) {
			matches = append(matches, line)
		}
	}
	return matches, nil
}

// ObjectType returns the type of the object identified by sha, or "" if the
// object does not exist.
func (r *Repo) ObjectType(sha string) (string, error) {
	out, err := r.Run("cat-file", "-t", sha)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "Not a valid object") || strings.Contains(msg, "could not get object info") {
			return "", nil
		}
		return "", err
	}
	return out, nil
}
