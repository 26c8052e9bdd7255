package fence

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/bitnom/path2md/pkg/ignore"
)

// OutputConfig selects the terminal mode for a run. File, Dir, and Clipboard
// are mutually exclusive; when none is set the artifact streams to Stdout.
type OutputConfig struct {
	File      string    // Write one combined artifact to this path.
	Dir       string    // Write one artifact per block into this directory.
	Clipboard bool      // Copy the combined artifact to the clipboard.
	Tree      bool      // Prepend a directory-tree preamble (single and stream modes).
	Stdout    io.Writer // Stream destination; defaults to os.Stdout.
}

// Result is the accounting for one run.
type Result struct {
	Rendered    int // Files shown with content.
	Referenced  int // Files noted without content.
	Excluded    int // Files that produced no block.
	SkippedDirs int // Directories that could not be listed.
	Bytes       int // Total artifact bytes written or streamed.
	Elapsed     time.Duration
}

// Run executes the whole pipeline over one scan root: traversal,
// classification, transformation, rendering, assembly. The RuleSet is shared
// read-only across every stage. Processing is strictly sequential, one entry
// at a time, so blocks land in the artifact in traversal order.
func Run(root string, rules *RuleSet, out OutputConfig, langs *LanguageTable, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", absRoot)
	}

	var global *ignore.Matcher
	if rules.GlobalIgnoreFile != "" {
		global = ignore.NewMatcher(logger)
		if err := global.CompileFile(rules.GlobalIgnoreFile); err != nil {
			// A half-loaded rule set must not produce a partial run.
			return nil, &ConfigError{Source: rules.GlobalIgnoreFile, Err: err}
		}
		logger.Debug("Loaded global ignore file", zap.String("file", rules.GlobalIgnoreFile))
	}

	logger.Info("Starting scan", zap.String("root", absRoot))

	planner := NewPlanner(absRoot, rules, global, logger)
	entries, skippedDirs, err := planner.Walk()
	if err != nil {
		return nil, fmt.Errorf("traversal failed: %w", err)
	}

	transformer := NewTransformer(rules.Transform, langs)
	renderer := NewRenderer(langs)

	result := &Result{SkippedDirs: skippedDirs}
	var blocks []RenderedBlock
	var included []PathEntry

	for _, entry := range entries {
		c := Classify(entry, rules, logger)
		switch c.Disposition {
		case Excluded:
			result.Excluded++
			continue
		case ReferencedOnly:
			blocks = append(blocks, renderer.Referenced(entry, c.Reason))
			result.Referenced++
		case Rendered:
			block, rendered := renderEntry(entry, rules, transformer, renderer, logger)
			blocks = append(blocks, block)
			if rendered {
				result.Rendered++
			} else {
				result.Referenced++
			}
		}
		included = append(included, entry)
	}

	var preamble string
	if out.Tree {
		preamble = BuildTree(filepath.Base(absRoot), included)
	}

	written, err := assemble(out, preamble, blocks, logger)
	if err != nil {
		return nil, err
	}
	result.Bytes = written

	result.Elapsed = time.Since(startTime)
	logger.Info("Scan completed",
		zap.Int("rendered", result.Rendered),
		zap.Int("referenced", result.Referenced),
		zap.Int("excluded", result.Excluded),
		zap.Int("skippedDirs", result.SkippedDirs),
		zap.Int("bytes", result.Bytes),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

// renderEntry reads, transforms, and renders one file selected for content
// rendering. Read and decode failures degrade the entry to a referenced-only
// block instead of aborting the run; the boolean reports whether content was
// actually rendered.
func renderEntry(entry PathEntry, rules *RuleSet, transformer *Transformer, renderer *Renderer, logger *zap.Logger) (RenderedBlock, bool) {
	raw, err := os.ReadFile(entry.AbsPath)
	if err != nil {
		rerr := &ReadError{Path: entry.RelPath, Err: err}
		logger.Warn("Degrading unreadable file to reference", zap.Error(rerr))
		return renderer.ReadFailure(entry, err), false
	}

	if !utf8.Valid(raw) {
		derr := &DecodeError{Path: entry.RelPath}
		logger.Warn("Degrading undecodable file to reference", zap.Error(derr))
		return renderer.Referenced(entry, ReasonDecodeError), false
	}

	ext := splitExt(path.Base(entry.RelPath))
	content := transformer.Apply(string(raw), ext)
	return renderer.Rendered(entry, content), true
}

func assemble(out OutputConfig, preamble string, blocks []RenderedBlock, logger *zap.Logger) (int, error) {
	assembler := NewAssembler(logger)

	switch {
	case out.File != "":
		return len(Combine(preamble, blocks)), assembler.WriteSingle(out.File, preamble, blocks)
	case out.Dir != "":
		total := 0
		for _, b := range blocks {
			total += len(b.Text)
		}
		return total, assembler.WriteSplit(out.Dir, blocks)
	case out.Clipboard:
		return len(Combine(preamble, blocks)), assembler.CopyToClipboard(preamble, blocks)
	default:
		w := out.Stdout
		if w == nil {
			w = os.Stdout
		}
		return len(Combine(preamble, blocks)), assembler.Stream(w, preamble, blocks)
	}
}
