package api

import "time"

const (
	// FileCleanupDelay is the delay before cleaning up temp files after response is sent
	FileCleanupDelay = 2 * time.Second

	// SplitCleanupDelay is the delay before cleaning up split part directories
	SplitCleanupDelay = 5 * time.Second

	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755
)
