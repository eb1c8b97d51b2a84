// Copyright (c) 2026 Paddock. All rights reserved.

package admin

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// # Backup Tooling Contracts

// Dumper produces a full database dump at the given path.
type Dumper interface {
	Dump(context context.Context, destPath string) error
}

// Restorer replays a dump file into the database.
type Restorer interface {
	Restore(context context.Context, srcPath string) error
}

// # pg_dump Implementation

// PgTool drives the PostgreSQL client binaries (pg_dump, psql) against the
// configured database. Both binaries accept the connection string directly,
// so no password handling happens here.
type PgTool struct {
	databaseURL string
}

// NewPgTool constructs a [PgTool] for the given connection string.
func NewPgTool(databaseURL string) *PgTool {
	return &PgTool{databaseURL: databaseURL}
}

/*
Dump writes a plain-SQL dump of the whole database to destPath.

Description: Runs pg_dump with --clean so a later restore drops and
recreates objects instead of colliding with them.

Parameters:
  - context: context.Context
  - destPath: string

Returns:
  - error: Binary invocation or filesystem failures
*/
func (tool *PgTool) Dump(context context.Context, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("backup_dir_create_failed: %w", err)
	}

	cmd := exec.CommandContext(context, "pg_dump",
		"--no-owner",
		"--clean",
		"--if-exists",
		"--file", destPath,
		tool.databaseURL,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pg_dump_failed: %w: %s", err, string(output))
	}

	return nil
}

/*
Restore replays a plain-SQL dump file through psql.

Parameters:
  - context: context.Context
  - srcPath: string

Returns:
  - error: Binary invocation failures
*/
func (tool *PgTool) Restore(context context.Context, srcPath string) error {
	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("backup_file_missing: %w", err)
	}

	cmd := exec.CommandContext(context, "psql",
		"--set", "ON_ERROR_STOP=1",
		"--file", srcPath,
		tool.databaseURL,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("psql_restore_failed: %w: %s", err, string(output))
	}

	return nil
}

// backupFilename stamps dump files so they sort chronologically on disk.
func backupFilename(at time.Time) string {
	return fmt.Sprintf("backup_%s.sql", at.Format("20060102_150405"))
}
