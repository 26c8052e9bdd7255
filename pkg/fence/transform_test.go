package fence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTransformer(cfg TransformConfig) *Transformer {
	return NewTransformer(cfg, DefaultLanguageTable())
}

func TestStripHashComments(t *testing.T) {
	tr := newTestTransformer(TransformConfig{StripComments: true, MaxBlankLines: -1})

	t.Run("trailing comment removed", func(t *testing.T) {
		assert.Equal(t, "x = 1", tr.Apply("x = 1  # note", "py"))
	})

	t.Run("full-line comment removed", func(t *testing.T) {
		assert.Equal(t, "\nx = 1", tr.Apply("# header\nx = 1\n", "py"))
	})

	t.Run("marker inside URL retained", func(t *testing.T) {
		// The matcher is lexical; it only treats `#` after whitespace or at
		// line start as a comment, so the fragment marker survives.
		assert.Equal(t, `url = "http://x#y"`, tr.Apply(`url = "http://x#y"`, "py"))
	})

	t.Run("marker after space inside string is stripped", func(t *testing.T) {
		// Accepted limitation: no special-casing of in-string markers.
		assert.Equal(t, `s = "a`, tr.Apply(`s = "a # b"`, "py"))
	})

	t.Run("unknown extension untouched", func(t *testing.T) {
		assert.Equal(t, "x = 1  # note", tr.Apply("x = 1  # note", "txt"))
	})
}

func TestStripSlashComments(t *testing.T) {
	tr := newTestTransformer(TransformConfig{StripComments: true, MaxBlankLines: -1})

	t.Run("line comment removed", func(t *testing.T) {
		assert.Equal(t, "let a = 1;", tr.Apply("let a = 1; // init", "js"))
	})

	t.Run("block comment removed", func(t *testing.T) {
		assert.Equal(t, "a();\nb();", tr.Apply("a();/* gone\nstill gone */\nb();", "js"))
	})

	t.Run("protocol slashes retained", func(t *testing.T) {
		assert.Equal(t, `fetch("https://example.com")`, tr.Apply(`fetch("https://example.com")`, "js"))
	})
}

func TestTruncateStrings(t *testing.T) {
	tr := newTestTransformer(TransformConfig{MaxStringLength: 6, MaxBlankLines: -1})

	t.Run("double quoted", func(t *testing.T) {
		got := tr.Apply(`s = "aaaaaaaaaa"`, "py")
		assert.Equal(t, `s = "aaaaa... (String truncated)"`, got)
	})

	t.Run("single quoted", func(t *testing.T) {
		got := tr.Apply(`s = 'bbbbbbbbbb'`, "py")
		assert.Equal(t, `s = 'bbbbb... (String truncated)'`, got)
	})

	t.Run("backtick", func(t *testing.T) {
		got := tr.Apply("s = `cccccccccc`", "js")
		assert.Equal(t, "s = `ccccc... (String truncated)`", got)
	})

	t.Run("short literal untouched", func(t *testing.T) {
		assert.Equal(t, `s = "abc"`, tr.Apply(`s = "abc"`, "py"))
	})
}

func TestTruncateLines(t *testing.T) {
	tr := newTestTransformer(TransformConfig{MaxLineLength: 5, MaxBlankLines: -1})

	t.Run("long line cut with marker", func(t *testing.T) {
		got := tr.Apply("abcdefghij", "txt")
		assert.Equal(t, "abcde // (Line truncated to save space)j", got)
	})

	t.Run("cut at quote drops final char", func(t *testing.T) {
		got := tr.Apply(`abcd"efghij`, "txt")
		assert.Equal(t, `abcd" // (Line truncated to save space)`, got)
	})

	t.Run("short line untouched", func(t *testing.T) {
		assert.Equal(t, "abc", tr.Apply("abc", "txt"))
	})
}

func TestCollapseBlankLines(t *testing.T) {
	tr := newTestTransformer(TransformConfig{MaxBlankLines: 1})

	t.Run("run collapsed to limit", func(t *testing.T) {
		assert.Equal(t, "a\n\nb", tr.Apply("a\n\n\n\n\nb", "txt"))
	})

	t.Run("zero allows no blanks", func(t *testing.T) {
		tr0 := newTestTransformer(TransformConfig{MaxBlankLines: 0})
		assert.Equal(t, "a\nb", tr0.Apply("a\n\n\nb", "txt"))
	})

	t.Run("whitespace-only lines count as blank", func(t *testing.T) {
		assert.Equal(t, "a\n\t\nb", tr.Apply("a\n\t\n  \nb", "txt"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := tr.Apply("a\n\n\n\nb\n\n\n\nc", "txt")
		assert.Equal(t, once, tr.Apply(once, "txt"))
	})
}

func TestTransformOrderAndTermination(t *testing.T) {
	t.Run("line endings normalized", func(t *testing.T) {
		tr := newTestTransformer(TransformConfig{MaxBlankLines: -1})
		got := tr.Apply("a\r\nb\rc\r\n", "txt")
		assert.Equal(t, "a\nb\nc", got)
		assert.False(t, strings.HasSuffix(got, "\n"))
	})

	t.Run("comment strip runs before blank collapse", func(t *testing.T) {
		// Stripping a full-line comment leaves a blank line, which the
		// collapse pass then removes.
		tr := newTestTransformer(TransformConfig{StripComments: true, MaxBlankLines: 0})
		got := tr.Apply("a = 1\n# gone\nb = 2", "py")
		assert.Equal(t, "a = 1\nb = 2", got)
	})

	t.Run("no transforms is identity modulo termination", func(t *testing.T) {
		tr := newTestTransformer(TransformConfig{MaxBlankLines: -1})
		assert.Equal(t, "x = 1  # note", tr.Apply("x = 1  # note\n", "py"))
	})
}
