package astrocalc

import "embed"

// MigrationsFS holds the Postgres schema migrations applied at start-up.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
