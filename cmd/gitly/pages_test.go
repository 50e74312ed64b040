// Package main provides the entry point for the gitly CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPagesCommand(t *testing.T) {
	mock := newMockGit(recordCommit(t, shaA, "https://example.com/a", "alpha"))
	outDir := filepath.Join(t.TempDir(), "public")

	var buf bytes.Buffer
	cmd := newPagesCmdInternal(testStore(mock))
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--out", outDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "wrote 1 pages") {
		t.Errorf("output = %q, want page count", buf.String())
	}

	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("entry count = %d, want index plus at least one redirect page", len(entries))
	}
}

func TestPagesCommandEmptyStore(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "public")

	var buf bytes.Buffer
	cmd := newPagesCmdInternal(testStore(newMockGit()))
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--out", outDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}
