package ignore

import (
	"path"
	"strings"

	"go.uber.org/zap"
)

// layer is one matcher scoped to a directory inside the scan tree. The base
// is the slash-separated path of that directory relative to the scan root,
// or "" for the root and for a global ignore file.
type layer struct {
	base    string
	matcher *Matcher
}

// Stack layers per-directory ignore files over an optional global file.
// Layers are pushed as the traversal descends and popped on the way back up.
// Directory-local patterns are evaluated after, and therefore with priority
// over, the global file for paths under that directory.
type Stack struct {
	layers []layer
	logger *zap.Logger
}

// NewStack creates a Stack. A nil global matcher means no global patterns.
func NewStack(global *Matcher, logger *zap.Logger) *Stack {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Stack{logger: logger}
	if global != nil {
		s.layers = append(s.layers, layer{base: "", matcher: global})
	}
	return s
}

// Push adds a matcher anchored at the given directory (relative to the scan
// root, "" for the root itself).
func (s *Stack) Push(base string, m *Matcher) {
	s.layers = append(s.layers, layer{base: path.Clean(strings.Trim(base, "/")), matcher: m})
	s.logger.Debug("Pushed ignore layer", zap.String("base", base))
}

// Pop removes the most recently pushed matcher. The global layer, when
// present, is never popped by traversal because it was installed first.
func (s *Stack) Pop() {
	if len(s.layers) == 0 {
		return
	}
	s.layers = s.layers[:len(s.layers)-1]
}

// Depth returns the number of layers currently on the stack.
func (s *Stack) Depth() int {
	return len(s.layers)
}

// Matches evaluates the path (slash-separated, relative to the scan root)
// against every applicable layer, bottom-up. A layer only applies to paths
// under its base directory, and later layers override earlier ones, so the
// innermost ignore file has the final say.
func (s *Stack) Matches(relPath string, isDir bool) bool {
	relPath = strings.Trim(path.Clean(relPath), "/")

	decision := false
	for _, l := range s.layers {
		scoped, ok := scope(relPath, l.base)
		if !ok {
			continue
		}
		if matched, p := l.matcher.Match(scoped, isDir); p != nil {
			decision = matched
		}
	}
	return decision
}

// scope rebases relPath onto a layer's base directory. Returns false when
// the path is not under the base.
func scope(relPath, base string) (string, bool) {
	if base == "" || base == "." {
		return relPath, true
	}
	if relPath == base {
		// The layer's own directory is governed by outer layers only.
		return "", false
	}
	if strings.HasPrefix(relPath, base+"/") {
		return strings.TrimPrefix(relPath, base+"/"), true
	}
	return "", false
}
