package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherBasicPatterns(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		path    string
		isDir   bool
		matches bool
	}{
		{"exact filename", []string{"secrets.env"}, "secrets.env", false, true},
		{"exact filename nested", []string{"secrets.env"}, "config/secrets.env", false, true},
		{"exact filename no match", []string{"secrets.env"}, "secrets.env.bak", false, false},
		{"extension wildcard", []string{"*.log"}, "app.log", false, true},
		{"extension wildcard nested", []string{"*.log"}, "var/log/app.log", false, true},
		{"extension wildcard no match", []string{"*.log"}, "app.log.txt", false, false},
		{"question mark", []string{"file?.txt"}, "file1.txt", false, true},
		{"question mark no match", []string{"file?.txt"}, "file12.txt", false, false},
		{"directory contents covered", []string{"vendor"}, "vendor/pkg/a.go", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(nil)
			m.CompileLines(tt.lines...)
			assert.Equal(t, tt.matches, m.Matches(tt.path, tt.isDir))
		})
	}
}

func TestMatcherAnchoring(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileLines("/build")

	assert.True(t, m.Matches("build", true), "leading slash anchors to the pattern file's directory")
	assert.True(t, m.Matches("build/out.txt", false), "anchored directory covers its contents")
	assert.False(t, m.Matches("src/build", true), "anchored pattern must not match nested names")
}

func TestMatcherDirectoryOnlyPatterns(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileLines("dist/")

	assert.True(t, m.Matches("dist", true))
	assert.True(t, m.Matches("dist/bundle.js", false))
	assert.False(t, m.Matches("dist", false), "trailing slash restricts the pattern to directories")
}

func TestMatcherDoubleStar(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		matches bool
	}{
		{"leading double star", "**/node_modules", "a/b/node_modules", true},
		{"leading double star at root", "**/node_modules", "node_modules", true},
		{"middle double star adjacent", "a/**/b", "a/b", true},
		{"middle double star deep", "a/**/b", "a/x/y/b", true},
		{"middle double star no match", "a/**/b", "a/b/c/d", true}, // directory match covers contents
		{"trailing double star", "docs/**", "docs/guide/intro.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(nil)
			m.CompileLines(tt.pattern)
			assert.Equal(t, tt.matches, m.Matches(tt.path, false))
		})
	}
}

func TestMatcherNegationLaterPatternWins(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileLines("*.env", "!keep.env")

	assert.True(t, m.Matches("secrets.env", false))
	assert.False(t, m.Matches("keep.env", false), "negation re-includes a previously excluded path")

	// Reversed order: the exclude comes later, so it wins.
	m2 := NewMatcher(nil)
	m2.CompileLines("!keep.env", "*.env")
	assert.True(t, m2.Matches("keep.env", false))
}

func TestMatcherSkipsCommentsAndBlanks(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileLines("# a comment", "", "   ", "*.tmp")

	require.Len(t, m.Patterns, 1)
	assert.True(t, m.Matches("x.tmp", false))
}

func TestMatcherEscapedLeadingHash(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileLines(`\#literal`)

	assert.True(t, m.Matches("#literal", false))
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(fpath, []byte("*.log\n!important.log\n"), 0o644))

	m := NewMatcher(nil)
	require.NoError(t, m.CompileFile(fpath))

	assert.True(t, m.Matches("debug.log", false))
	assert.False(t, m.Matches("important.log", false))
}

func TestCompileFileMissing(t *testing.T) {
	m := NewMatcher(nil)
	err := m.CompileFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
