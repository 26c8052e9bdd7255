package fence

import (
	"fmt"
	"path"
)

// Renderer wraps one file's representation into a labeled block: a path
// header plus either a fenced content body or a short referenced-only
// notice. Excluded entries never reach the renderer.
type Renderer struct {
	langs *LanguageTable
}

// NewRenderer builds a Renderer. A nil language table falls back to the
// built-in defaults.
func NewRenderer(langs *LanguageTable) *Renderer {
	if langs == nil {
		langs = DefaultLanguageTable()
	}
	return &Renderer{langs: langs}
}

// Rendered produces the block for a file shown with content: a bold path
// header followed by the content inside a fence labeled with the language
// hint for the file's extension.
func (r *Renderer) Rendered(entry PathEntry, content string) RenderedBlock {
	ext := splitExt(path.Base(entry.RelPath))
	label := r.langs.FenceLabel(ext)
	return RenderedBlock{
		Path: entry.RelPath,
		Text: fmt.Sprintf("**%s**\n```%s\n%s\n```\n", entry.RelPath, label, content),
	}
}

// Referenced produces the block for a file whose path is noted but whose
// content is withheld: a header plus a fixed-format notice naming the
// reason. No content body is ever emitted.
func (r *Renderer) Referenced(entry PathEntry, reason OmitReason) RenderedBlock {
	return RenderedBlock{
		Path: entry.RelPath,
		Text: fmt.Sprintf("**%s** %s\n", entry.RelPath, notice(reason)),
	}
}

// ReadFailure produces the referenced-only block for a file that was
// selected for rendering but could not be read.
func (r *Renderer) ReadFailure(entry PathEntry, err error) RenderedBlock {
	return RenderedBlock{
		Path: entry.RelPath,
		Text: fmt.Sprintf("**%s** (Error reading file: %v)\n", entry.RelPath, err),
	}
}

func notice(reason OmitReason) string {
	switch reason {
	case ReasonTooLarge:
		return "(Source omitted: file exceeds size limit)"
	case ReasonBinary:
		return "(Source omitted: binary file)"
	case ReasonDecodeError:
		return "(Source omitted: content is not valid UTF-8)"
	case ReasonReadError:
		return "(Source omitted: file could not be read)"
	default:
		return "(Source omitted to save space)"
	}
}
