package fence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CommentStyle identifies the lexical comment syntax assumed for a file
// extension. The mapping is deliberately small and textual: it is not
// language-aware parsing and is never meant to become it.
type CommentStyle int

const (
	// CommentNone disables comment stripping for the extension.
	CommentNone CommentStyle = iota
	// CommentHash strips `#` to end of line.
	CommentHash
	// CommentSlash strips `//` to end of line and `/* ... */` spans.
	CommentSlash
)

// LanguageTable maps file extensions (without the dot) to a fence label and
// a comment style. Lookups outside the table fall back to the raw extension
// as the label and no comment stripping.
type LanguageTable struct {
	labels   map[string]string
	comments map[string]CommentStyle
}

// languageEntry is the YAML shape of one language in a languages.yml overlay.
type languageEntry struct {
	Label      string   `yaml:"label"`
	Comment    string   `yaml:"comment"` // "hash", "slash", or "none"
	Extensions []string `yaml:"extensions"`
}

// DefaultLanguageTable returns the built-in extension table.
func DefaultLanguageTable() *LanguageTable {
	t := &LanguageTable{
		labels:   map[string]string{},
		comments: map[string]CommentStyle{},
	}

	t.labels["py"] = "python"
	t.labels["rb"] = "ruby"
	t.labels["js"] = "javascript"
	t.labels["mjs"] = "javascript"
	t.labels["jsx"] = "jsx"
	t.labels["ts"] = "typescript"
	t.labels["tsx"] = "tsx"
	t.labels["sh"] = "bash"
	t.labels["yml"] = "yaml"
	t.labels["md"] = "markdown"

	t.comments["py"] = CommentHash
	for _, ext := range []string{"js", "ts", "mjs", "tsx", "css", "html", "go"} {
		t.comments[ext] = CommentSlash
	}

	return t
}

// LoadLanguageTable builds a table from the defaults plus an optional
// languages.yml overlay. Overlay entries win over the built-ins.
func LoadLanguageTable(path string) (*LanguageTable, error) {
	t := DefaultLanguageTable()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading language file %s: %w", path, err)
	}

	var entries map[string]languageEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error parsing language file %s: %w", path, err)
	}

	for name, entry := range entries {
		label := entry.Label
		if label == "" {
			label = name
		}
		style := CommentNone
		switch entry.Comment {
		case "hash":
			style = CommentHash
		case "slash":
			style = CommentSlash
		}
		for _, ext := range entry.Extensions {
			t.labels[ext] = label
			t.comments[ext] = style
		}
	}

	return t, nil
}

// FenceLabel returns the language hint used on the opening fence for the
// given extension (without the dot).
func (t *LanguageTable) FenceLabel(ext string) string {
	if label, ok := t.labels[ext]; ok {
		return label
	}
	return ext
}

// CommentStyle returns the comment syntax assumed for the extension.
func (t *LanguageTable) CommentStyle(ext string) CommentStyle {
	return t.comments[ext]
}
