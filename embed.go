package teaguard

import "embed"

// MigrationsFS holds the embedded SQL migrations applied on startup.
//
//go:embed migrations
var MigrationsFS embed.FS
