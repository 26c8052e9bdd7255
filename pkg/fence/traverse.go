package fence

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/bitnom/path2md/pkg/ignore"
)

// Planner walks the directory tree top-down and emits the candidate file
// entries, applying the depth limit, directory omit/whitelist rules, and
// ignore patterns. Files are emitted in the order os.ReadDir returns them,
// which is that primitive's own sorted order; the planner adds no sorting of
// its own.
type Planner struct {
	root    string
	rules   *RuleSet
	ignores *ignore.Stack
	logger  *zap.Logger

	entries     []PathEntry
	skippedDirs int
}

// NewPlanner creates a Planner over an absolute scan root. The global
// matcher may be nil when no global ignore file is configured.
func NewPlanner(root string, rules *RuleSet, global *ignore.Matcher, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		root:    root,
		rules:   rules,
		ignores: ignore.NewStack(global, logger),
		logger:  logger,
	}
}

// Walk traverses the tree and returns the candidate file entries plus the
// number of directories skipped because they could not be listed. Unreadable
// subtrees are recovered locally: a warning is logged and the walk continues.
func (p *Planner) Walk() ([]PathEntry, int, error) {
	p.entries = nil
	p.skippedDirs = 0
	p.walkDir(p.root, "", 0)
	return p.entries, p.skippedDirs, nil
}

func (p *Planner) walkDir(abs, rel string, depth int) {
	dirents, err := os.ReadDir(abs)
	if err != nil {
		terr := &TraversalError{Path: abs, Err: err}
		p.logger.Warn("Skipping unreadable directory", zap.String("path", abs), zap.Error(terr))
		p.skippedDirs++
		return
	}

	if p.rules.ObeyGitignores {
		if m := p.loadLocalIgnore(abs); m != nil {
			p.ignores.Push(rel, m)
			defer p.ignores.Pop()
		}
	}

	for _, d := range dirents {
		name := d.Name()
		childRel := joinRel(rel, name)

		if d.IsDir() {
			if !p.shouldDescend(name, childRel, depth) {
				continue
			}
			p.walkDir(filepath.Join(abs, name), childRel, depth+1)
			continue
		}

		if p.ignores.Matches(childRel, false) {
			p.logger.Debug("File matches ignore pattern", zap.String("path", childRel))
			continue
		}

		info, err := d.Info()
		if err != nil {
			p.logger.Warn("Cannot stat file", zap.String("path", childRel), zap.Error(err))
			continue
		}

		p.entries = append(p.entries, PathEntry{
			AbsPath: filepath.Join(abs, name),
			RelPath: childRel,
			IsDir:   false,
			Size:    info.Size(),
			Depth:   depth,
		})
	}
}

// shouldDescend applies the directory rules in order: depth limit, omit
// list, whitelists, ignore patterns. Omitted subtrees are never walked, so
// nothing inside them is ever classified.
func (p *Planner) shouldDescend(name, childRel string, depth int) bool {
	if p.rules.MaxDepth >= 0 && depth+1 > p.rules.MaxDepth {
		return false
	}

	if contains(p.rules.OmitDirs, name) {
		p.logger.Debug("Skipping omitted directory", zap.String("path", childRel))
		return false
	}

	if len(p.rules.WhitelistDirs) > 0 {
		if !contains(p.rules.WhitelistDirs, name) {
			return false
		}
	} else if len(p.rules.Whitelist) > 0 && !contains(p.rules.Whitelist, name) {
		return false
	}

	if p.ignores.Matches(childRel, true) {
		p.logger.Debug("Skipping ignored directory", zap.String("path", childRel))
		return false
	}

	return true
}

// loadLocalIgnore compiles the .gitignore in a directory, if present.
func (p *Planner) loadLocalIgnore(dir string) *ignore.Matcher {
	fpath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(fpath); err != nil {
		return nil
	}
	m := ignore.NewMatcher(p.logger)
	if err := m.CompileFile(fpath); err != nil {
		p.logger.Warn("Cannot read local ignore file", zap.String("path", fpath), zap.Error(err))
		return nil
	}
	return m
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return path.Join(rel, name)
}

// splitExt returns the extension of a filename without the leading dot.
func splitExt(name string) string {
	ext := path.Ext(name)
	return strings.TrimPrefix(ext, ".")
}
