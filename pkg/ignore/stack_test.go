package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compileMatcher(lines ...string) *Matcher {
	m := NewMatcher(nil)
	m.CompileLines(lines...)
	return m
}

func TestStackGlobalOnly(t *testing.T) {
	s := NewStack(compileMatcher("*.log"), nil)

	assert.True(t, s.Matches("app.log", false))
	assert.True(t, s.Matches("sub/app.log", false))
	assert.False(t, s.Matches("app.txt", false))
}

func TestStackNilGlobal(t *testing.T) {
	s := NewStack(nil, nil)
	assert.False(t, s.Matches("anything", false))
	assert.Equal(t, 0, s.Depth())
}

func TestStackLocalOverridesGlobal(t *testing.T) {
	s := NewStack(compileMatcher("*.log"), nil)
	s.Push("sub", compileMatcher("!keep.log"))

	assert.True(t, s.Matches("sub/debug.log", false), "global pattern still applies under sub")
	assert.False(t, s.Matches("sub/keep.log", false), "local negation re-includes the path")
	assert.True(t, s.Matches("keep.log", false), "local layer does not apply outside its base")
}

func TestStackLocalScopedToBase(t *testing.T) {
	s := NewStack(nil, nil)
	s.Push("sub", compileMatcher("*.tmp"))

	assert.True(t, s.Matches("sub/x.tmp", false))
	assert.False(t, s.Matches("x.tmp", false))
	assert.False(t, s.Matches("other/x.tmp", false))
}

func TestStackPopRestoresOuterDecision(t *testing.T) {
	s := NewStack(compileMatcher("*.log"), nil)
	s.Push("sub", compileMatcher("!keep.log"))
	assert.False(t, s.Matches("sub/keep.log", false))

	s.Pop()
	assert.True(t, s.Matches("sub/keep.log", false), "popping the layer restores the global decision")
}

func TestStackInnermostWins(t *testing.T) {
	s := NewStack(nil, nil)
	s.Push("", compileMatcher("*.env"))
	s.Push("sub", compileMatcher("!local.env"))
	s.Push("sub/inner", compileMatcher("local.env"))

	assert.True(t, s.Matches("top.env", false))
	assert.False(t, s.Matches("sub/local.env", false))
	assert.True(t, s.Matches("sub/inner/local.env", false), "the innermost ignore file has the final say")
}
