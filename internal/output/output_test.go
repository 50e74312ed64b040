package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"user error", NewUserError("bad id"), ExitUserError},
		{"system error", NewSystemError("git failed"), ExitSystemError},
		{"conflict error", NewConflictError("staged changes"), ExitConflict},
		{"wrapped exit error", errorsWrap(NewConflictError("mid-merge")), ExitConflict},
		{"plain error", errors.New("anything"), ExitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func errorsWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ inner error }

func (w *wrapped) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapped) Unwrap() error { return w.inner }

func TestExitErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewSystemErrorWithCause("git command failed", cause)
	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}

func TestPrinterSuccessHuman(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false)

	if err := p.Success(map[string]any{"message": "created"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if got := buf.String(); got != "created\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrinterSuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, false)

	if err := p.Success(map[string]any{"id": "abc", "url": "https://example.com"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded["id"] != "abc" {
		t.Errorf("id = %v", decoded["id"])
	}
}

func TestPrinterErrorJSONIncludesCode(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, false)

	p.Error(NewConflictError("staged changes present"))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["error"] != "staged changes present" {
		t.Errorf("error = %v", decoded["error"])
	}
	if code, ok := decoded["code"].(float64); !ok || int(code) != ExitConflict {
		t.Errorf("code = %v, want %d", decoded["code"], ExitConflict)
	}
}

func TestPrinterErrorHumanGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, false, false).WithStderr(&errOut)

	p.Error(NewUserError("id not found"))

	if out.Len() != 0 {
		t.Errorf("stdout not empty: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "id not found") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false)

	p.Table([]string{"SHORT", "URL"}, [][]string{
		{"2VfUX", "https://example.com"},
		{"9xYq", "https://other.example.com/long/path"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "SHORT") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "9xYq ") {
		t.Errorf("short column not padded: %q", lines[2])
	}
}

func TestIsTTYNonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY() = true for a buffer")
	}
}
