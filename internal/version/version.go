package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/patchling/patchling/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/patchling/patchling/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/patchling/patchling/internal/version.Date={{.Date}}
)
