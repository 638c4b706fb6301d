package frontend

import (
	"path/filepath"
	"strings"
)

// Document is an essay file split into metadata and scoreable prose.
type Document struct {
	Frontmatter *Frontmatter
	Meta        EssayMeta
	// Text is the prose handed to the analyzers.
	Text string
	// Heading is the first markdown heading, if any.
	Heading string
}

// Title prefers the frontmatter title, then the first heading.
func (d *Document) Title() string {
	if t := strings.TrimSpace(d.Meta.Title); t != "" {
		return t
	}
	return d.Heading
}

// IsMarkdown reports whether path should be rendered as markdown.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ParseDocument parses frontmatter and extracts prose. Markdown bodies are
// rendered to plain text; anything else is used verbatim.
func ParseDocument(content string, markdown bool) (*Document, error) {
	fm, err := ParseYAMLFrontmatter(content)
	if err != nil {
		return nil, err
	}
	meta, err := fm.Meta()
	if err != nil {
		return nil, err
	}

	doc := &Document{Frontmatter: fm, Meta: meta}
	if markdown {
		doc.Text, doc.Heading = PlainText(fm.Body)
	} else {
		doc.Text = strings.TrimSpace(strings.ReplaceAll(fm.Body, "\r\n", "\n"))
	}
	return doc, nil
}
