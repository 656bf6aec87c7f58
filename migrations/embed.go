// Package migrations carries the goose SQL migrations compiled into the
// server binary so a deployment never depends on files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
