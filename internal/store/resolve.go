package store

import (
	"errors"

	"github.com/gitly/gitly/internal/git"
)

// minDisambiguationLen is the shortest prefix the external enumeration
// fallback will accept.
const minDisambiguationLen = 4

// resolveHexPrefix resolves a hex prefix (or full hash) to a commit SHA.
// Returns "" with a nil error when nothing matches.
//
// The direct object-store lookup detects ambiguity but cannot enumerate
// candidates, so ambiguous prefixes fall back to an external enumeration
// process. The input is re-validated as pure hex of at least 4 characters
// strictly before that process is spawned; this guard is a security
// invariant, not an optimization.
func (s *Store) resolveHexPrefix(prefix string) (string, error) {
	sha, err := s.git.ResolveCommitPrefix(prefix)
	if err == nil {
		return sha, nil
	}
	if !errors.Is(err, git.ErrAmbiguousPrefix) {
		return "", err
	}

	if len(prefix) < minDisambiguationLen || !isHex(prefix) {
		return "", nil
	}

	candidates, err := s.git.CommitsWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	for _, candidate := range candidates {
		typ, err := s.git.ObjectType(candidate)
		if err != nil {
			return "", err
		}
		if typ == "commit" {
			return candidate, nil
		}
	}
	return "", nil
}

// isHex reports whether s consists solely of lowercase hex digits.
func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return len(s) > 0
}
