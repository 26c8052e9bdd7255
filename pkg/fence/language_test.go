package fence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenceLabelLookup(t *testing.T) {
	langs := DefaultLanguageTable()

	assert.Equal(t, "python", langs.FenceLabel("py"))
	assert.Equal(t, "typescript", langs.FenceLabel("ts"))
	assert.Equal(t, "bash", langs.FenceLabel("sh"))
	assert.Equal(t, "toml", langs.FenceLabel("toml"), "unknown extensions fall back to the raw extension")
	assert.Equal(t, "", langs.FenceLabel(""), "extensionless files get a bare fence")
}

func TestCommentStyleLookup(t *testing.T) {
	langs := DefaultLanguageTable()

	assert.Equal(t, CommentHash, langs.CommentStyle("py"))
	assert.Equal(t, CommentSlash, langs.CommentStyle("go"))
	assert.Equal(t, CommentNone, langs.CommentStyle("txt"))
}

func TestLoadLanguageTableOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "languages.yml")
	require.NoError(t, os.WriteFile(overlay, []byte(`
kotlin:
  label: kotlin
  comment: slash
  extensions: [kt, kts]
python:
  label: py3
  comment: hash
  extensions: [py]
`), 0o644))

	langs, err := LoadLanguageTable(overlay)
	require.NoError(t, err)

	assert.Equal(t, "kotlin", langs.FenceLabel("kt"))
	assert.Equal(t, CommentSlash, langs.CommentStyle("kts"))
	assert.Equal(t, "py3", langs.FenceLabel("py"), "overlay entries win over built-ins")
	assert.Equal(t, "ruby", langs.FenceLabel("rb"), "built-ins outside the overlay survive")
}

func TestLoadLanguageTableEmptyPath(t *testing.T) {
	langs, err := LoadLanguageTable("")
	require.NoError(t, err)
	assert.Equal(t, "markdown", langs.FenceLabel("md"))
}

func TestLoadLanguageTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLanguageTable(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(bad, []byte(":\n  - ["), 0o644))
		_, err := LoadLanguageTable(bad)
		assert.Error(t, err)
	})
}
