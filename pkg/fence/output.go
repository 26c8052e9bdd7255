package fence

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Assembler is the terminal stage: it consumes the ordered block sequence
// and either concatenates it into one artifact or persists one artifact per
// block. Blocks stay structured until this point; output is never split by
// searching flattened text for delimiters.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler builds an Assembler.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// unsafeFilenameChars are the characters replaced when a relative path is
// flattened into an artifact filename.
var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters that are invalid on common
// filesystems with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Combine flattens the block sequence, in traversal order, into one text
// artifact. An optional preamble (the tree view) goes first.
func Combine(preamble string, blocks []RenderedBlock) string {
	parts := make([]string, 0, len(blocks)+1)
	if preamble != "" {
		parts = append(parts, preamble)
	}
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}

// WriteSingle persists the concatenated artifact to one file.
func (a *Assembler) WriteSingle(path, preamble string, blocks []RenderedBlock) error {
	out, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			a.logger.Error("Failed to close output file", zap.String("file", path), zap.Error(cerr))
		}
	}()

	w := bufio.NewWriter(out)
	if _, err := w.WriteString(Combine(preamble, blocks)); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	a.logger.Debug("Wrote combined artifact", zap.String("file", path), zap.Int("blocks", len(blocks)))
	return nil
}

// WriteSplit persists one artifact per block into dir, naming each from the
// block's sanitized relative path. Two distinct entries that sanitize to the
// same name collide; the later one overwrites the earlier.
func (a *Assembler) WriteSplit(dir string, blocks []RenderedBlock) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}

	for _, b := range blocks {
		name := SanitizeFilename(b.Path) + ".md"
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, []byte(b.Text), 0o644); err != nil {
			return &WriteError{Path: target, Err: err}
		}
		a.logger.Debug("Wrote per-file artifact", zap.String("file", target), zap.String("source", b.Path))
	}
	return nil
}

// Stream emits the concatenated artifact to a writer without persisting.
func (a *Assembler) Stream(w io.Writer, preamble string, blocks []RenderedBlock) error {
	if _, err := io.WriteString(w, Combine(preamble, blocks)); err != nil {
		return &WriteError{Path: "stream", Err: err}
	}
	return nil
}

// CopyToClipboard places the concatenated artifact on the system clipboard
// instead of printing it.
func (a *Assembler) CopyToClipboard(preamble string, blocks []RenderedBlock) error {
	if err := clipboard.WriteAll(Combine(preamble, blocks)); err != nil {
		return &WriteError{Path: "clipboard", Err: err}
	}
	a.logger.Info("Output copied to clipboard")
	return nil
}
