package database

import _ "embed"

// Schema is the full fixture schema as a single script, kept in sync with
// the migrations. Tests apply it directly to in-memory databases instead of
// running the migration machinery.
//
//go:embed schema.sql
var Schema string
