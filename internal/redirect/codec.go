package redirect

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatterDelim delimits the key/value header block of a record message.
const frontMatterDelim = "---"

// EncodeMessage serializes fields into a commit message: a YAML front-matter
// header carrying url plus any extension keys, followed by the free-text
// description. Derived fields are never serialized; they are recomputed from
// the commit on every read.
func EncodeMessage(fields Fields) (string, error) {
	header := make(map[string]string, len(fields.Meta)+1)
	for key, val := range fields.Meta {
		header[key] = val
	}
	header["url"] = fields.URL

	data, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding record header: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontMatterDelim)
	b.WriteString("\n")
	b.Write(data)
	b.WriteString(frontMatterDelim)
	b.WriteString("\n")
	if desc := strings.TrimSpace(fields.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// DecodeMessage parses a commit message into redirect fields.
// Returns ErrNotARecord if the message has no front-matter header, the
// header is malformed, or the url key is missing or invalid. This is the
// mechanism that filters merge commits and foreign history out of reads.
func DecodeMessage(message string) (*Fields, error) {
	header, body, ok := splitFrontMatter(message)
	if !ok {
		return nil, ErrNotARecord
	}

	var raw map[string]string
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARecord, "malformed header")
	}

	target, ok := raw["url"]
	if !ok || !ValidURL(target) {
		return nil, ErrNotARecord
	}
	delete(raw, "url")
	if len(raw) == 0 {
		raw = nil
	}

	return &Fields{
		URL:         target,
		Description: strings.TrimSpace(body),
		Meta:        raw,
	}, nil
}

// splitFrontMatter separates the YAML header from the description body.
// The header must open on the first non-blank line and be closed by a
// matching delimiter line.
func splitFrontMatter(message string) (header, body string, ok bool) {
	lines := strings.Split(message, "\n")

	idx := 0
	for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}
	if idx >= len(lines) || strings.TrimSpace(lines[idx]) != frontMatterDelim {
		return "", "", false
	}
	idx++

	var headerLines []string
	closed := false
	for ; idx < len(lines); idx++ {
		if strings.TrimSpace(lines[idx]) == frontMatterDelim {
			closed = true
			idx++
			break
		}
		headerLines = append(headerLines, lines[idx])
	}
	if !closed {
		return "", "", false
	}

	return strings.Join(headerLines, "\n"), strings.Join(lines[idx:], "\n"), true
}
