package frontend

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Frontmatter represents parsed frontmatter data
type Frontmatter struct {
	Data map[string]any
	Body string
	// Present reports whether the content opened with a frontmatter block.
	Present bool
}

// EssayMeta is the typed view of an essay file's frontmatter.
type EssayMeta struct {
	Topic string `yaml:"topic"`
	Title string `yaml:"title"`
	Debug bool   `yaml:"debug"`
}

// ParseYAMLFrontmatter extracts a YAML block delimited by "---" lines from the
// start of content. Content without an opening delimiter line, or without a
// closing one, is returned whole as the body.
func ParseYAMLFrontmatter(content string) (*Frontmatter, error) {
	normalized := strings.TrimPrefix(content, "\ufeff")
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")

	noFrontmatter := &Frontmatter{Data: make(map[string]any), Body: content}

	first, rest, ok := strings.Cut(normalized, "\n")
	if !ok || strings.TrimRight(first, " \t") != delimiter {
		return noFrontmatter, nil
	}

	block, body, found := cutClosing(rest)
	if !found {
		return noFrontmatter, nil
	}

	data := make(map[string]any)
	if err := yaml.Unmarshal([]byte(block), &data); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if data == nil {
		data = make(map[string]any)
	}

	return &Frontmatter{Data: data, Body: body, Present: true}, nil
}

// cutClosing splits rest at the first line consisting of the delimiter.
func cutClosing(rest string) (block, body string, found bool) {
	offset := 0
	for offset <= len(rest) {
		line, after, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t") == delimiter {
			return rest[:offset], after, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", "", false
}

// Meta decodes the frontmatter into EssayMeta. Unknown keys are ignored.
func (f *Frontmatter) Meta() (EssayMeta, error) {
	var meta EssayMeta
	if len(f.Data) == 0 {
		return meta, nil
	}
	raw, err := yaml.Marshal(f.Data)
	if err != nil {
		return meta, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("decoding frontmatter: %w", err)
	}
	return meta, nil
}
