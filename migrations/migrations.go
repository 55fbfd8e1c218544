// Package migrations embeds the SQL schema applied by the tern migrator at
// startup.
package migrations

import "embed"

//go:embed *.sql
var MigrationFiles embed.FS
