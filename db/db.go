package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed schema/*.json
var Schemas embed.FS
