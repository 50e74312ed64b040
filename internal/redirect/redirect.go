// Package redirect provides the redirect schema, URL validation, and the
// commit-message codec for the gitly store.
package redirect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrNotARecord is returned when a commit message cannot be decoded as a
// redirect. Merge commits and unrelated history fail decoding with this
// error and are filtered out of read paths.
var ErrNotARecord = errors.New("commit is not a redirect record")

// allowedSchemes is the protocol allow-list for redirect targets.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// Redirect is a stored short-link entry decoded from a single commit.
type Redirect struct {
	// ID is the base58 encoding of the full commit hash. It is unique and
	// immutable for the life of the repository.
	ID string `json:"id"`
	// Short is the base58 encoding of the shortest whole-byte hash prefix
	// that currently resolves uniquely. It can grow as history grows and
	// must not be persisted as a long-term key.
	Short       string            `json:"short"`
	URL         string            `json:"url"`
	Description string            `json:"description,omitempty"`
	Created     time.Time         `json:"created"`
	Creator     string            `json:"creator"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// Fields is the caller-supplied portion of a redirect: everything except the
// derived fields (id, short, created, creator).
type Fields struct {
	URL         string
	Description string
	Meta        map[string]string
}

// ValidationError is returned when redirect fields fail validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidURL reports whether s is an absolute URL with an allowed scheme.
// It never panics; anything that fails a strict parse is invalid.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return false
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}

// Validate checks the caller-supplied fields.
// Returns a ValidationError describing the first violation.
func (f *Fields) Validate() error {
	if f.URL == "" {
		return &ValidationError{Field: "url", Message: "required"}
	}
	if !ValidURL(f.URL) {
		return &ValidationError{Field: "url", Message: "must be an absolute http, https, or ftp URL"}
	}
	for key := range f.Meta {
		if key == "url" {
			return &ValidationError{Field: "meta", Message: "extension key \"url\" is reserved"}
		}
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Field: "meta", Message: "extension keys must be non-empty"}
		}
	}
	return nil
}
