package fence

import (
	"regexp"
	"strings"
)

// Transformer applies the optional text transforms to the raw content of a
// rendered file, in a fixed order: comment stripping, string truncation,
// line truncation, blank-line collapsing.
//
// All of it is lexical pattern matching, not parsing. A comment marker that
// follows whitespace inside a string literal is stripped like a real comment
// and an escaped quote can make string truncation misfire. That imprecision
// is the documented contract, kept isolated here so a per-language
// replacement can slot in later without touching traversal or
// classification.
type Transformer struct {
	cfg   TransformConfig
	langs *LanguageTable
}

// NewTransformer builds a Transformer. A nil language table falls back to
// the built-in defaults.
func NewTransformer(cfg TransformConfig, langs *LanguageTable) *Transformer {
	if langs == nil {
		langs = DefaultLanguageTable()
	}
	return &Transformer{cfg: cfg, langs: langs}
}

var (
	// Line-comment markers count only at line start or after whitespace, so
	// a marker embedded mid-token (a `#` in a URL, the `//` of `http://`)
	// survives. A marker after whitespace inside a string literal does not;
	// that is the accepted limitation of lexical matching.
	hashCommentPattern  = regexp.MustCompile(`(?m)(^|[ \t])#.*`)
	slashCommentPattern = regexp.MustCompile(`(?m)(^|[ \t])//.*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Triple-quoted literals are matched after their single-quoted
	// counterparts, same as the source patterns; the misfires that ordering
	// can cause are accepted.
	stringPatterns = []*regexp.Regexp{
		regexp.MustCompile(`'[^']*'`),
		regexp.MustCompile(`"[^"]*"`),
		regexp.MustCompile("(?s)'''(.*?)'''"),
		regexp.MustCompile(`(?s)"""(.*?)"""`),
		regexp.MustCompile("`[^`]*`"),
	}
)

// Apply runs the configured transforms over the content of one file. Line
// endings are normalized to LF first and the result carries no trailing
// newline, so output termination does not depend on the input's style.
func (t *Transformer) Apply(content, ext string) string {
	content = normalizeNewlines(content)

	if t.cfg.StripComments {
		content = t.stripComments(content, ext)
	}
	if t.cfg.MaxStringLength > 0 {
		content = truncateStrings(content, t.cfg.MaxStringLength)
	}
	if t.cfg.MaxLineLength > 0 {
		content = truncateLines(content, t.cfg.MaxLineLength)
	}
	if t.cfg.MaxBlankLines >= 0 {
		content = collapseBlankLines(content, t.cfg.MaxBlankLines)
	}

	return strings.TrimRight(content, "\n")
}

// stripComments removes comments according to the extension's comment style.
// Extensions outside the mapping come back untouched. Lines that lost a
// comment are trimmed of the whitespace that preceded the marker.
func (t *Transformer) stripComments(content, ext string) string {
	switch t.langs.CommentStyle(ext) {
	case CommentHash:
		content = hashCommentPattern.ReplaceAllString(content, "")
	case CommentSlash:
		content = slashCommentPattern.ReplaceAllString(content, "")
		content = blockCommentPattern.ReplaceAllString(content, "")
	default:
		return content
	}
	return trimTrailingSpace(content)
}

// trimTrailingSpace removes trailing spaces and tabs from every line.
func trimTrailingSpace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// truncateStrings shortens recognized string literals longer than max,
// appending an explicit truncation marker and restoring the closing
// delimiter.
func truncateStrings(content string, max int) string {
	for _, pattern := range stringPatterns {
		content = pattern.ReplaceAllStringFunc(content, func(s string) string {
			if len(s) <= max {
				return s
			}
			if strings.HasPrefix(s, "'''") || strings.HasPrefix(s, `"""`) {
				return s[:max] + "... (String truncated) " + s[:3]
			}
			return s[:max] + "... (String truncated)" + s[len(s)-1:]
		})
	}
	return content
}

// truncateLines cuts every line longer than max and appends a marker. When
// the cut lands just after a quote character the line's final character is
// not re-appended, matching the established output format.
func truncateLines(content string, max int) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if len(line) <= max {
			continue
		}
		if c := line[max-1]; c == '\'' || c == '"' || c == '`' {
			lines[i] = line[:max] + " // (Line truncated to save space)"
		} else {
			lines[i] = line[:max] + " // (Line truncated to save space)" + line[len(line)-1:]
		}
	}
	return strings.Join(lines, "\n")
}

// collapseBlankLines limits runs of consecutive blank lines to max. Already
// collapsed content passes through unchanged, so the operation is
// idempotent.
func collapseBlankLines(content string, max int) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
		} else {
			blanks = 0
		}
		if blanks <= max {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func normalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}
