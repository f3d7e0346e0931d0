package taskmanager

import "embed"

// Migrations holds the goose SQL migrations for the postgres storage.
//
//go:embed migrations/*.sql
var Migrations embed.FS
