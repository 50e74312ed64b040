package git

import (
	"strings"
	"time"

	"github.com/gitly/gitly/internal/output"
)

// Commit represents a git commit with the metadata gitly reads.
type Commit struct {
	SHA         string    // Full 40-character SHA
	Author      string    // Author name
	AuthorEmail string    // Author email
	Date        time.Time // Author date, including timezone offset
	Message     string    // Full raw commit message
}

// commitBoundary delimits commits in log output.
const commitBoundary = "---GITLY-COMMIT---"

// fieldBoundary delimits fields within a commit.
const fieldBoundary = "---GITLY-FIELD---"

// logFormat is the pretty format used for all commit reads.
// The raw message (%B) goes last: it can contain newlines but never the
// boundary markers.
var logFormat = strings.Join([]string{
	"%H",  // Full SHA
	"%an", // Author name
	"%ae", // Author email
	"%aI", // Author date, strict ISO 8601 with offset
	"%B",  // Raw message
}, fieldBoundary) + commitBoundary

// Log returns commits in the given range. from is exclusive and may be
// empty for unbounded history; until is inclusive. With oldestFirst the
// ordering is reversed to time-ascending.
func (r *Repo) Log(from, until string, oldestFirst bool) ([]Commit, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if oldestFirst {
		args = append(args, "--reverse")
	}

	rangeSpec := until
	if from != "" {
		rangeSpec = from + ".." + until
	}
	args = append(args, rangeSpec)

	out, err := r.Run(args...)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to get git log for "+rangeSpec, err)
	}

	return parseCommits(out), nil
}

// CommitInfo returns the commit identified by the full SHA.
func (r *Repo) CommitInfo(sha string) (*Commit, error) {
	out, err := r.Run("show", "--no-patch", "--pretty=format:"+logFormat, sha)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read commit "+sha, err)
	}

	commits := parseCommits(out)
	if len(commits) != 1 {
		return nil, output.NewSystemError("unexpected git show output for " + sha)
	}
	return &commits[0], nil
}

// CommitMessage creates a new commit on the current branch carrying only a
// message: the tree is inherited unchanged from the parent. The caller must
// have verified a clean index. Returns the SHA of the new commit.
func (r *Repo) CommitMessage(message string) (string, error) {
	if _, err := r.Run("commit", "--allow-empty", "-m", message); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create record commit", err)
	}

	sha, err := r.Run("rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read new commit", err)
	}
	return sha, nil
}

// parseCommits parses boundary-delimited git log output into Commit values.
// Commits with malformed field layout are dropped.
func parseCommits(out string) []Commit {
	if out == "" {
		return nil
	}

	var commits []Commit
	for _, chunk := range strings.Split(out, commitBoundary) {
		chunk = strings.TrimLeft(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if commit, ok := parseCommitFields(chunk); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

// parseCommitFields parses a single boundary-delimited chunk.
func parseCommitFields(chunk string) (Commit, bool) {
	fields := strings.SplitN(chunk, fieldBoundary, 5)
	if len(fields) < 5 {
		return Commit{}, false
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[3]))
	if err != nil {
		return Commit{}, false
	}

	return Commit{
		SHA:         strings.TrimSpace(fields[0]),
		Author:      strings.TrimSpace(fields[1]),
		AuthorEmail: strings.TrimSpace(fields[2]),
		Date:        date,
		Message:     fields[4],
	}, true
}
