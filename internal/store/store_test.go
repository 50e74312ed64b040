package store

import (
	"strings"
	"testing"
	"time"

	"github.com/gitly/gitly/internal/git"
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/shortid"
)

// --- Test helpers ---

// Full 40-char SHAs used across the store tests. shaC and shaD share a
// 4-hex prefix and diverge at the 5th character.
const (
	shaA = "1111aaaa2222bbbb3333cccc4444dddd5555eeee"
	shaB = "9999ffff8888eeee7777dddd6666cccc5555bbbb"
	shaC = "abcd111122223333444455556666777788889999"
	shaD = "abcd211122223333444455556666777788889999"
)

// mockGit implements Git over an in-memory commit list, oldest first.
type mockGit struct {
	branch    string
	commits   []git.Commit
	nextSHAs  []string
	staged    bool
	conflicts bool
	sequencer bool

	branchErr error
	logErr    error

	pushErrs   []error // consumed one per Push call
	fetchErr   error
	mergeErr   error
	pushCalls  int
	fetchCalls int
	mergeLog   []string

	enumCalls int // CommitsWithPrefix invocations
}

func newMockGit(commits ...git.Commit) *mockGit {
	return &mockGit{branch: "main", commits: commits}
}

func (m *mockGit) CurrentBranch() (string, error) {
	if m.branchErr != nil {
		return "", m.branchErr
	}
	return m.branch, nil
}

func (m *mockGit) Head() (string, error) {
	if len(m.commits) == 0 {
		return "", nil
	}
	return m.commits[len(m.commits)-1].SHA, nil
}

func (m *mockGit) HasStagedChanges() (bool, error) { return m.staged, nil }
func (m *mockGit) HasConflicts() (bool, error)     { return m.conflicts, nil }
func (m *mockGit) SequencerActive() (bool, error)  { return m.sequencer, nil }

func (m *mockGit) Log(from, until string, oldestFirst bool) ([]git.Commit, error) {
	if m.logErr != nil {
		return nil, m.logErr
	}

	start := 0
	if from != "" {
		for i, commit := range m.commits {
			if commit.SHA == from {
				start = i + 1
				break
			}
		}
	}

	selected := append([]git.Commit(nil), m.commits[start:]...)
	if !oldestFirst {
		for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
			selected[i], selected[j] = selected[j], selected[i]
		}
	}
	return selected, nil
}

func (m *mockGit) CommitInfo(sha string) (*git.Commit, error) {
	for i := range m.commits {
		if m.commits[i].SHA == sha {
			return &m.commits[i], nil
		}
	}
	return nil, output.NewSystemError("unknown commit " + sha)
}

func (m *mockGit) CommitMessage(message string) (string, error) {
	if len(m.nextSHAs) == 0 {
		return "", output.NewSystemError("mock has no next SHA")
	}
	sha := m.nextSHAs[0]
	m.nextSHAs = m.nextSHAs[1:]
	m.commits = append(m.commits, git.Commit{
		SHA:     sha,
		Author:  "Test User",
		Date:    time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(len(m.commits)) * time.Minute),
		Message: message,
	})
	return sha, nil
}

func (m *mockGit) ResolveCommitPrefix(prefix string) (string, error) {
	var matches []string
	for _, commit := range m.commits {
		if strings.HasPrefix(commit.SHA, prefix) {
			matches = append(matches, commit.SHA)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", git.ErrAmbiguousPrefix
	}
}

func (m *mockGit) CommitsWithPrefix(prefix string) ([]string, error) {
	m.enumCalls++
	var matches []string
	for _, commit := range m.commits {
		if strings.HasPrefix(commit.SHA, prefix) {
			matches = append(matches, commit.SHA)
		}
	}
	return matches, nil
}

func (m *mockGit) ObjectType(sha string) (string, error) {
	for _, commit := range m.commits {
		if commit.SHA == sha {
			return "commit", nil
		}
	}
	return "", nil
}

func (m *mockGit) Push(remote, branch string) error {
	m.pushCalls++
	if len(m.pushErrs) == 0 {
		return nil
	}
	err := m.pushErrs[0]
	m.pushErrs = m.pushErrs[1:]
	return err
}

func (m *mockGit) Fetch(remote, branch string) error {
	m.fetchCalls++
	return m.fetchErr
}

func (m *mockGit) MergeRemoteBranch(remote, branch string) error {
	m.mergeLog = append(m.mergeLog, remote+"/"+branch)
	return m.mergeErr
}

// recordCommit builds a commit carrying an encoded redirect message.
func recordCommit(t *testing.T, sha, targetURL, description string, created time.Time) git.Commit {
	t.Helper()
	message, err := redirect.EncodeMessage(redirect.Fields{URL: targetURL, Description: description})
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	return git.Commit{
		SHA:     sha,
		Author:  "Test User",
		Date:    created,
		Message: message,
	}
}

func canonical(t *testing.T, sha string) string {
	t.Helper()
	id, err := shortid.Canonical(sha)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// --- Get ---

func TestGetByCanonicalID(t *testing.T) {
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.FixedZone("", 3600))
	mock := newMockGit(recordCommit(t, shaA, "https://example.com/docs", "docs", created))
	s := New(mock, "main", "origin")

	rec, err := s.Get(canonical(t, shaA))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if rec.URL != "https://example.com/docs" {
		t.Errorf("URL = %q", rec.URL)
	}
	if rec.Description != "docs" {
		t.Errorf("Description = %q", rec.Description)
	}
	if rec.Creator != "Test User" {
		t.Errorf("Creator = %q", rec.Creator)
	}
	if !rec.Created.Equal(created) {
		t.Errorf("Created = %v, want %v", rec.Created, created)
	}
	if rec.ID != canonical(t, shaA) {
		t.Errorf("ID = %q", rec.ID)
	}
}

func TestGetByShortID(t *testing.T) {
	mock := newMockGit(
		recordCommit(t, shaA, "https://example.com/a", "", time.Now()),
		recordCommit(t, shaB, "https://example.com/b", "", time.Now()),
	)
	s := New(mock, "main", "origin")

	rec, err := s.Get(canonical(t, shaA))
	if err != nil {
		t.Fatal(err)
	}

	// The short id resolves back to the same commit as the canonical id.
	byShort, err := s.Get(rec.Short)
	if err != nil {
		t.Fatalf("Get(short) error = %v", err)
	}
	if byShort.ID != rec.ID {
		t.Errorf("short id resolved to %q, want %q", byShort.ID, rec.ID)
	}

	// With distinct leading bytes, the minimal whole-byte prefix is 4 hex.
	hexPrefix, err := shortid.DecodeToHex(rec.Short)
	if err != nil {
		t.Fatal(err)
	}
	if len(hexPrefix) != 4 {
		t.Errorf("short prefix = %q, want 4 hex chars", hexPrefix)
	}
}

func TestGetNotFound(t *testing.T) {
	mock := newMockGit(recordCommit(t, shaA, "https://example.com", "", time.Now()))
	s := New(mock, "main", "origin")

	_, err := s.Get(canonical(t, shaB))
	if err == nil {
		t.Fatal("Get() succeeded for unknown id")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
}

func TestGetInvalidID(t *testing.T) {
	s := New(newMockGit(), "main", "origin")

	// 0 and O are outside the base58 alphabet.
	_, err := s.Get("O0O0")
	if err == nil {
		t.Fatal("Get() accepted invalid base58")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
}

func TestGetNonRecordCommitIsNotFound(t *testing.T) {
	merge := git.Commit{
		SHA:     shaA,
		Author:  "Test User",
		Date:    time.Now(),
		Message: "Merge remote-tracking branch 'origin/main'",
	}
	s := New(newMockGit(merge), "main", "origin")

	_, err := s.Get(canonical(t, shaA))
	if err == nil {
		t.Fatal("Get() returned a record for a merge commit")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
}

// --- Short id collision handling ---

func TestShortIDCollision(t *testing.T) {
	mock := newMockGit(
		recordCommit(t, shaC, "https://example.com/first", "", time.Now()),
		recordCommit(t, shaD, "https://example.com/second", "", time.Now()),
	)
	s := New(mock, "main", "origin")

	first, err := s.Get(canonical(t, shaC))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Get(canonical(t, shaD))
	if err != nil {
		t.Fatal(err)
	}

	for _, rec := range []*redirect.Redirect{first, second} {
		hexPrefix, err := shortid.DecodeToHex(rec.Short)
		if err != nil {
			t.Fatal(err)
		}
		if len(hexPrefix) < 6 {
			t.Errorf("short prefix %q shorter than 6 hex chars despite collision", hexPrefix)
		}
	}

	got, err := s.Get(first.Short)
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != "https://example.com/first" {
		t.Errorf("first short id resolved to %q", got.URL)
	}

	got, err = s.Get(second.Short)
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != "https://example.com/second" {
		t.Errorf("second short id resolved to %q", got.URL)
	}
}

// --- Resolver fallback guard ---

func TestResolveGuardBlocksShortPrefixEnumeration(t *testing.T) {
	// Both commits share the 2-hex prefix "ab": a direct lookup reports
	// ambiguity, but the prefix is too short for the enumeration fallback.
	mock := newMockGit(
		recordCommit(t, shaC, "https://example.com/a", "", time.Now()),
		recordCommit(t, shaD, "https://example.com/b", "", time.Now()),
	)
	s := New(mock, "main", "origin")

	// base58 "3x" decodes to the single byte 0xab.
	_, err := s.Get("3x")
	if err == nil {
		t.Fatal("Get() succeeded on a 2-hex prefix")
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want user error", output.GetExitCode(err))
	}
	if mock.enumCalls != 0 {
		t.Errorf("enumeration spawned %d times for an invalid prefix, want 0", mock.enumCalls)
	}
}

func TestResolveFallbackEnumerates(t *testing.T) {
	mock := newMockGit(
		recordCommit(t, shaC, "https://example.com/a", "", time.Now()),
		recordCommit(t, shaD, "https://example.com/b", "", time.Now()),
	)
	s := New(mock, "main", "origin")

	sha, err := s.resolveHexPrefix("abcd")
	if err != nil {
		t.Fatalf("resolveHexPrefix() error = %v", err)
	}
	if sha != shaC {
		t.Errorf("resolved %q, want first candidate %q", sha, shaC)
	}
	if mock.enumCalls != 1 {
		t.Errorf("enumeration spawned %d times, want 1", mock.enumCalls)
	}
}

func TestIsHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abcd", true},
		{"1234567890abcdef", true},
		{"", false},
		{"ABCD", false},
		{"xyz", false},
		{"abc$", false},
		{"abcd; rm -rf /", false},
	}

	for _, tt := range tests {
		if got := isHex(tt.in); got != tt.want {
			t.Errorf("isHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
