// Package shortid derives base58 identifiers from commit hashes: the
// canonical id encodes the full hash, the short id encodes the shortest
// whole-byte hex prefix that currently resolves uniquely.
package shortid

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// minPrefixLen is the shortest hex prefix worth trying. Prefixes must cover
// whole bytes: a half-byte prefix does not survive a base58 round trip, so
// the granularity is 2 hex characters and the floor is 2 bytes.
const minPrefixLen = 4

// ResolveFunc maps a hex prefix to the full hex hash of the unique commit it
// resolves to, or "" when the prefix matches no commit or more than one.
type ResolveFunc func(hexPrefix string) (string, error)

// Canonical returns the base58 encoding of the full commit hash.
func Canonical(hexSHA string) (string, error) {
	raw, err := hex.DecodeString(hexSHA)
	if err != nil {
		return "", fmt.Errorf("invalid commit hash %q: %w", hexSHA, err)
	}
	return base58.Encode(raw), nil
}

// Shortest returns the base58 encoding of the shortest hex prefix of hexSHA
// that resolve maps back to hexSHA. Prefix lengths are tried ascending from
// 4 hex characters in steps of 2; the first unique length wins, so the
// result is minimal at call time. The full hash always terminates the
// search. Minimality is not durable: a later commit can force a longer
// prefix on the next computation.
func Shortest(hexSHA string, resolve ResolveFunc) (string, error) {
	if len(hexSHA) < minPrefixLen || len(hexSHA)%2 != 0 {
		return "", fmt.Errorf("invalid commit hash %q: want full even-length hex", hexSHA)
	}

	for length := minPrefixLen; length <= len(hexSHA); length += 2 {
		prefix := hexSHA[:length]
		resolved, err := resolve(prefix)
		if err != nil {
			return "", fmt.Errorf("testing prefix %q: %w", prefix, err)
		}
		if resolved == hexSHA {
			return Canonical(prefix)
		}
	}

	// Unreachable for a hash that exists in the store: the full-length
	// prefix resolves to itself.
	return "", fmt.Errorf("hash %q did not resolve to itself", hexSHA)
}

// DecodeToHex decodes a base58 id (canonical or short) back to the hex
// prefix used as the resolver lookup key.
func DecodeToHex(id string) (string, error) {
	raw, err := base58.Decode(id)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", id, err)
	}
	return hex.EncodeToString(raw), nil
}
