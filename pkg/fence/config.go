// Package fence turns a directory tree into fenced markdown blocks: it walks
// the tree, decides for each file whether its content is rendered, referenced
// without content, or excluded entirely, applies optional text transforms,
// and assembles the resulting blocks into a single document, a directory of
// per-file documents, or a stream.
package fence

// Disposition is the per-file decision of whether and how content appears in
// the output.
type Disposition int

const (
	// Excluded files produce no output at all.
	Excluded Disposition = iota
	// ReferencedOnly files have their path noted but their content withheld.
	ReferencedOnly
	// Rendered files appear with their (possibly transformed) content fenced.
	Rendered
)

func (d Disposition) String() string {
	switch d {
	case Excluded:
		return "excluded"
	case ReferencedOnly:
		return "referenced-only"
	case Rendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// OmitReason explains why a ReferencedOnly file's content was withheld.
type OmitReason int

const (
	ReasonNone        OmitReason = iota
	ReasonOmitted                // matched a filename or extension omit list
	ReasonTooLarge               // exceeds the max file size
	ReasonBinary                 // null byte in the content sample
	ReasonReadError              // file could not be opened or read
	ReasonDecodeError            // content is not valid UTF-8
)

// DefaultMaxFileSize is the size limit applied when none is configured.
const DefaultMaxFileSize int64 = 100 * 1024 // 100 KB

// TransformConfig is the subset of RuleSet governing content transformation.
// A zero limit disables the corresponding operation; MaxBlankLines uses -1
// because zero legitimately means "no blank lines at all".
type TransformConfig struct {
	StripComments   bool // Remove line and block comments where the syntax is known.
	MaxStringLength int  // Truncate string literals longer than this (0 = off).
	MaxLineLength   int  // Truncate lines longer than this (0 = off).
	MaxBlankLines   int  // Collapse runs of blank lines to this many (-1 = off).
}

// RuleSet is the resolved configuration governing one run. It is constructed
// once, shared read-only across every stage, and never mutated.
type RuleSet struct {
	Extensions     []string // Extension allow-list; nil means all extensions.
	OmitExtensions []string // Extensions referenced but never rendered.
	OmitFiles      []string // Filenames referenced but never rendered.
	OmitDirs       []string // Directory names never traversed.
	WhitelistFiles []string // If set, only these filenames are eligible.
	WhitelistDirs  []string // If set, only these directory names are traversed.
	Whitelist      []string // Combined list of file and directory names.

	MaxDepth    int   // Maximum directory depth to enter (-1 = unlimited).
	MaxFileSize int64 // Files larger than this are referenced, not rendered.

	GlobalIgnoreFile string // Optional path to a gitignore-style pattern file.
	ObeyGitignores   bool   // Discover .gitignore files in traversed directories.

	Transform TransformConfig
}

// DefaultRuleSet returns a RuleSet with the documented defaults: every
// extension eligible, no depth limit, 100 KB size limit, no transforms.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		MaxDepth:    -1,
		MaxFileSize: DefaultMaxFileSize,
		Transform: TransformConfig{
			MaxBlankLines: -1,
		},
	}
}

// PathEntry is one filesystem entry produced by the traversal planner.
// Immutable once produced.
type PathEntry struct {
	AbsPath string // Absolute location on disk.
	RelPath string // Slash-separated path relative to the scan root.
	IsDir   bool
	Size    int64 // Byte size; meaningful for files only.
	Depth   int   // Directory depth from the scan root (root = 0).
}

// RenderedBlock is the final textual unit for one PathEntry: a path header
// plus either fenced content or a short referenced-only notice. Blocks carry
// their path so the assembler can split output per file without ever parsing
// flattened text back apart.
type RenderedBlock struct {
	Path string // Relative path of the entry the block describes.
	Text string // Complete block text, header included.
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
