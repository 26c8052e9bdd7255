package fence

import (
	"path"

	"go.uber.org/zap"
)

// Classification pairs a Disposition with the reason content was withheld
// when the disposition is ReferencedOnly.
type Classification struct {
	Disposition Disposition
	Reason      OmitReason
}

// Classify decides how one file entry appears in the output. The decision
// order is fixed and first-match-wins: omit lists take precedence over
// whitelists and allow-lists, so a file can be explicitly noted-but-omitted
// even when its extension would otherwise qualify for full rendering.
// Binary detection is absolute: not even an explicit file whitelist renders
// a binary file.
func Classify(entry PathEntry, rules *RuleSet, logger *zap.Logger) Classification {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := path.Base(entry.RelPath)
	ext := splitExt(name)

	if contains(rules.OmitFiles, name) {
		return Classification{ReferencedOnly, ReasonOmitted}
	}
	if contains(rules.OmitExtensions, ext) {
		return Classification{ReferencedOnly, ReasonOmitted}
	}

	if len(rules.WhitelistFiles) > 0 && !contains(rules.WhitelistFiles, name) {
		return Classification{Excluded, ReasonNone}
	}
	if len(rules.Whitelist) > 0 &&
		!contains(rules.Whitelist, name) && !contains(rules.Whitelist, entry.RelPath) {
		return Classification{Excluded, ReasonNone}
	}

	if rules.Extensions != nil && !contains(rules.Extensions, ext) {
		return Classification{Excluded, ReasonNone}
	}

	if entry.Size > rules.MaxFileSize {
		logger.Debug("File exceeds size limit",
			zap.String("path", entry.RelPath),
			zap.Int64("sizeBytes", entry.Size),
			zap.Int64("maxSizeBytes", rules.MaxFileSize))
		return Classification{ReferencedOnly, ReasonTooLarge}
	}

	sample, err := sampleFile(entry.AbsPath)
	if err != nil {
		logger.Warn("Cannot sample file", zap.String("path", entry.RelPath), zap.Error(err))
		return Classification{ReferencedOnly, ReasonReadError}
	}
	if IsBinary(sample) {
		return Classification{ReferencedOnly, ReasonBinary}
	}

	return Classification{Rendered, ReasonNone}
}
