package commands

// LineStats exports lineStats for testing.
var LineStats = lineStats //nolint:gochecknoglobals // test export

// ContentLines exports contentLines for testing.
var ContentLines = contentLines //nolint:gochecknoglobals // test export

// UnifiedPatch exports unifiedPatch for testing.
var UnifiedPatch = unifiedPatch //nolint:gochecknoglobals // test export

// AncestorDirs exports ancestorDirs for testing.
var AncestorDirs = ancestorDirs //nolint:gochecknoglobals // test export

// LocalHash exports localHash for testing.
var LocalHash = localHash //nolint:gochecknoglobals // test export

// CommitIdentity exports commitIdentity for testing.
var CommitIdentity = commitIdentity //nolint:gochecknoglobals // test export
