// Package parser derives display text from raw note content: an optional
// YAML frontmatter block, a title, inline #tags and the thumbnail preview.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PreviewLines is the number of non-empty lines a thumbnail shows.
	PreviewLines = 6
	// PreviewChars caps the preview length in characters.
	PreviewChars = 360
	// EmptyPreview is shown for notes with no visible text.
	EmptyPreview = "(empty)"
)

var tagRe = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// Result holds the output of parsing a note.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Title       string
	Tags        []string
	Preview     string
}

// Parse splits frontmatter from the body and derives the rest. Invalid
// frontmatter is treated as plain text.
func Parse(data []byte) *Result {
	fm, body := splitFrontmatter(data)
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Tags:        extractTags(body, fm),
		Preview:     Preview(body),
	}
}

// Preview is the thumbnail text for body: its first PreviewLines non-empty
// lines with trailing space removed, cut to PreviewChars characters.
func Preview(body string) string {
	content := strings.TrimSpace(body)
	if content == "" {
		return EmptyPreview
	}
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t\r"))
		if len(lines) == PreviewLines {
			break
		}
	}
	preview := strings.Join(lines, "\n")
	if r := []rune(preview); len(r) > PreviewChars {
		preview = string(r[:PreviewChars])
	}
	return preview
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the body. Without a valid block the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil || fm == nil {
		return nil, string(data)
	}
	return fm, body
}

// extractTags collects #tags from the body and the frontmatter "tags" list.
func extractTags(body string, fm map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if items, ok := fm["tags"].([]interface{}); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}
	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the
// first non-empty line with any leading # markers removed.
func deriveTitle(fm map[string]interface{}, body string) string {
	if s, ok := fm["title"].(string); ok && s != "" {
		return s
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}
