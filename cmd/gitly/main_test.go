// Package main provides the entry point for the gitly CLI.
package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gitly/gitly/internal/git"
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/shortid"
	"github.com/gitly/gitly/internal/store"
)

const (
	shaA = "1111aaaa2222bbbb3333cccc4444dddd5555eeee"
	shaB = "9999ffff8888eeee7777dddd6666cccc5555bbbb"
)

// mockGit implements store.Git over an in-memory commit list, oldest first.
type mockGit struct {
	branch   string
	commits  []git.Commit
	nextSHAs []string

	pushErrs  []error
	pushCalls int
}

func newMockGit(commits ...git.Commit) *mockGit {
	return &mockGit{branch: "main", commits: commits}
}

func (m *mockGit) CurrentBranch() (string, error) { return m.branch, nil }

func (m *mockGit) Head() (string, error) {
	if len(m.commits) == 0 {
		return "", nil
	}
	return m.commits[len(m.commits)-1].SHA, nil
}

func (m *mockGit) HasStagedChanges() (bool, error) { return false, nil }
func (m *mockGit) HasConflicts() (bool, error)     { return false, nil }
func (m *mockGit) SequencerActive() (bool, error)  { return false, nil }

func (m *mockGit) Log(from, until string, oldestFirst bool) ([]git.Commit, error) {
	start := 0
	if from != "" {
		for i, commit := range m.commits {
			if commit.SHA == from {
				start = i + 1
				break
			}
		}
	}
	return append([]git.Commit(nil), m.commits[start:]...), nil
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
		Date:    time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
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

func (m *mockGit) Fetch(remote, branch string) error { return nil }

func (m *mockGit) MergeRemoteBranch(remote, branch string) error { return nil }

// --- Test helpers ---

func recordCommit(t *testing.T, sha, targetURL, description string) git.Commit {
	t.Helper()
	message, err := redirect.EncodeMessage(redirect.Fields{URL: targetURL, Description: description})
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	return git.Commit{
		SHA:     sha,
		Author:  "Test User",
		Date:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
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

func testStore(mock *mockGit) *store.Store {
	return store.New(mock, "main", "origin")
}

// --- Root command tests ---

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	version, commit, date = "dev", "none", "unknown"
	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion() = %q, want %q", got, "dev")
	}

	version, commit, date = "1.2.0", "abcdef1234567890", "2026-03-01"
	got := buildVersion()
	if !strings.Contains(got, "1.2.0") || !strings.Contains(got, "abcdef1") {
		t.Errorf("buildVersion() = %q, want version and short commit", got)
	}
	if strings.Contains(got, "abcdef12") {
		t.Errorf("buildVersion() = %q, want commit truncated to 7 chars", got)
	}
}

func TestRootCommandNoArgsShowsHelp(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Core Commands:") {
		t.Errorf("help output missing command groups:\n%s", buf.String())
	}
}

func TestRootCommandJSONNoCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --json used without a command")
	}
	if !strings.Contains(buf.String(), `"error"`) {
		t.Errorf("output = %q, want JSON error", buf.String())
	}
}
