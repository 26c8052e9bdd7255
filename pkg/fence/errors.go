package fence

import "fmt"

// TraversalError reports a directory that could not be listed. Traversal
// recovers locally: the subtree is skipped and the walk continues.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot traverse %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// ReadError reports a file that could not be opened or read after being
// selected for rendering. The entry degrades to referenced-only.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DecodeError reports file content that is not valid UTF-8 despite passing
// the binary sample check. The entry degrades to referenced-only.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("content of %s is not valid UTF-8", e.Path)
}

// ConfigError reports an ignore-pattern source that could not be loaded.
// Fatal at startup: no partial run with a half-loaded rule set.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cannot load ignore patterns from %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// WriteError reports an output artifact that could not be persisted. Fatal;
// partial output already written is left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
