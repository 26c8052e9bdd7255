// Package ignore implements gitignore-style pattern matching: wildcard and
// `**` globs, leading-`/` anchoring, trailing-`/` directory patterns, and `!`
// negation with standard ignore-file precedence (a later matching pattern
// overrides an earlier one).
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled regular expression pattern, a negation
// flag, and metadata about the pattern's origin.
type Pattern struct {
	Regex    *regexp.Regexp // Compiled regular expression for the pattern.
	Contents *regexp.Regexp // For directory-only patterns: matches paths strictly inside the directory.
	Negate   bool           // Indicates if the pattern is a negation (starts with '!').
	DirOnly  bool           // Pattern ended with '/': names a directory, covers its contents.
	Line     string         // Original pattern line.
	LineNo   int            // Line number in the source (1-based).
}

// Matcher represents one ordered collection of ignore patterns, typically
// the contents of a single ignore file.
type Matcher struct {
	Patterns []*Pattern
	logger   *zap.Logger
}

// NewMatcher initializes an empty Matcher with an optional logger.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		Patterns: []*Pattern{},
		logger:   logger,
	}
}

// CompileLines parses and appends a set of pattern lines in order.
func (m *Matcher) CompileLines(lines ...string) {
	for i, line := range lines {
		p := parsePatternLine(line, len(m.Patterns)+i+1)
		if p != nil {
			m.Patterns = append(m.Patterns, p)
			m.logger.Debug("Compiled ignore pattern",
				zap.Int("lineNo", p.LineNo),
				zap.String("pattern", p.Line),
				zap.Bool("negate", p.Negate))
		}
	}
}

// CompileFile reads an ignore file and appends its patterns in file order.
func (m *Matcher) CompileFile(fpath string) error {
	content, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	m.CompileLines(lines...)
	m.logger.Debug("Compiled ignore file",
		zap.String("filePath", fpath),
		zap.Int("patternCount", len(m.Patterns)))
	return nil
}

// Matches reports whether the path matches the pattern set. The path must be
// slash-separated and relative to the directory the patterns anchor to.
func (m *Matcher) Matches(path string, isDir bool) bool {
	matched, _ := m.Match(path, isDir)
	return matched
}

// Match evaluates all patterns in order and returns the resulting decision
// along with the last pattern that matched, or nil if none did. Negated
// patterns re-include a previously excluded path.
func (m *Matcher) Match(path string, isDir bool) (bool, *Pattern) {
	normalized := filepath.ToSlash(path)

	matched := false
	var matchedPattern *Pattern

	for _, p := range m.Patterns {
		re := p.Regex
		if p.DirOnly && !isDir {
			// A directory-only pattern never names a file directly, but a
			// file inside the named directory is still covered.
			re = p.Contents
		}
		if re.MatchString(normalized) {
			matchedPattern = p
			matched = !p.Negate
		}
	}

	return matched, matchedPattern
}

// parsePatternLine processes a line from an ignore file into a compiled
// Pattern. Returns nil for empty lines, comments, and invalid patterns.
func parsePatternLine(line string, lineNo int) *Pattern {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Handle escaped leading `#` and `!`.
	if strings.HasPrefix(trimmed, "\\#") || strings.HasPrefix(trimmed, "\\!") {
		trimmed = trimmed[1:]
	}

	dirOnly := strings.HasSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")

	// A leading '/' anchors the pattern to the ignore file's directory.
	rooted := strings.HasPrefix(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "/")

	if trimmed == "" {
		return nil
	}

	escaped := escapeSpecialChars(trimmed)
	escaped = handleDoubleStarPatterns(escaped)
	escaped = wildcardToRegex(escaped)

	compiled, err := regexp.Compile(anchorPattern(escaped, rooted))
	if err != nil {
		return nil
	}

	p := &Pattern{
		Regex:   compiled,
		Negate:  negate,
		DirOnly: dirOnly,
		Line:    line,
		LineNo:  lineNo,
	}
	if dirOnly {
		contents, err := regexp.Compile(anchorContents(escaped, rooted))
		if err != nil {
			return nil
		}
		p.Contents = contents
	}
	return p
}

// escapeSpecialChars escapes regex special characters except for `*`, `?`, and `/`.
func escapeSpecialChars(pattern string) string {
	specialChars := `.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns processes '**' patterns into regex equivalents.
// The replacement text must stay free of `*` and `?`, which the wildcard
// conversion afterwards would rewrite.
func handleDoubleStarPatterns(pattern string) string {
	pattern = regexp.MustCompile(`/\*\*/`).ReplaceAllString(pattern, `(/|/.+/)`)
	pattern = regexp.MustCompile(`/\*\*$`).ReplaceAllString(pattern, `(/.+|)`)
	pattern = regexp.MustCompile(`^\*\*/`).ReplaceAllString(pattern, `(.+/|)`)
	return pattern
}

// wildcardToRegex converts `*` and `?` wildcards to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = regexp.MustCompile(`\*`).ReplaceAllString(pattern, `[^/]*`)
	return strings.ReplaceAll(pattern, "?", ".")
}

// anchorPattern anchors the pattern so it matches the full path. Rooted
// patterns match from the start of the path; unrooted ones match at any
// directory level. A match on a directory also covers everything under it.
func anchorPattern(pattern string, rooted bool) string {
	if rooted {
		return "^" + pattern + "(|/.*)$"
	}
	return "^(|.*/)" + pattern + "(|/.*)$"
}

// anchorContents anchors a directory-only pattern so it matches only paths
// strictly inside the named directory, never the name itself.
func anchorContents(pattern string, rooted bool) string {
	if rooted {
		return "^" + pattern + "/.+$"
	}
	return "^(|.*/)" + pattern + "/.+$"
}
