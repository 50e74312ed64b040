// Package publish writes static HTML pages for redirects: one
// meta-refresh page per record plus an index listing.
package publish

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
)

// pageTemplate renders a single redirect page. The meta refresh performs
// the actual redirect; the anchor is the fallback for clients that block it.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.URL}}">
<link rel="canonical" href="{{.URL}}">
<title>{{.Title}}</title>
</head>
<body>
<p>Redirecting to <a href="{{.URL}}">{{.URL}}</a>{{if .Description}} — {{.Description}}{{end}}</p>
</body>
</html>
`))

// indexTemplate renders the listing of all published redirects.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Redirects</title>
</head>
<body>
<h1>Redirects</h1>
<table>
<tr><th>Short</th><th>Target</th><th>Description</th><th>Created</th></tr>
{{range .}}<tr>
<td><a href="{{.Short}}.html">{{.Short}}</a></td>
<td><a href="{{.URL}}">{{.URL}}</a></td>
<td>{{.Description}}</td>
<td>{{.Created.Format "2006-01-02"}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// pageData is the template payload for a single redirect page.
type pageData struct {
	URL         string
	Title       string
	Description string
}

// WritePages writes one HTML page per redirect plus index.html into dir,
// creating it if needed. Pages are named <short>.html and <id>.html so
// both identifier forms stay linkable; the id page is written only when
// the two differ.
func WritePages(records []*redirect.Redirect, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return output.NewSystemErrorWithCause("creating pages directory "+dir, err)
	}

	for _, rec := range records {
		names := []string{rec.Short}
		if rec.ID != rec.Short {
			names = append(names, rec.ID)
		}
		for _, name := range names {
			if err := writePage(rec, filepath.Join(dir, name+".html")); err != nil {
				return err
			}
		}
	}

	return writeIndex(records, filepath.Join(dir, "index.html"))
}

// writePage renders a single redirect page to path.
func writePage(rec *redirect.Redirect, path string) error {
	title := rec.Description
	if title == "" {
		title = rec.URL
	}

	var b strings.Builder
	err := pageTemplate.Execute(&b, pageData{
		URL:         rec.URL,
		Title:       title,
		Description: rec.Description,
	})
	if err != nil {
		return output.NewSystemError(fmt.Sprintf("rendering page for %s: %v", rec.Short, err))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return output.NewSystemErrorWithCause("writing page "+path, err)
	}
	return nil
}

// writeIndex renders the index listing to path.
func writeIndex(records []*redirect.Redirect, path string) error {
	var b strings.Builder
	if err := indexTemplate.Execute(&b, records); err != nil {
		return output.NewSystemError(fmt.Sprintf("rendering index: %v", err))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return output.NewSystemErrorWithCause("writing index "+path, err)
	}
	return nil
}
