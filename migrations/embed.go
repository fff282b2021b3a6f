// Package migrations embeds the SQL schema migrations for both storage
// drivers. Files follow the NNN_name.sql convention and are applied in
// version order by the migration runner.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
