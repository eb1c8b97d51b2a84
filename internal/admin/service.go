// Copyright (c) 2026 Paddock. All rights reserved.

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/users/auth"
)

// # Service Layer

// Service orchestrates the admin panel use cases.
type Service struct {
	repo       Repository
	statsCache StatsCache
	users      auth.UserRepository
	backups    BackupRepository
	dumper     Dumper
	restorer   Restorer
	backupDir  string
	logger     *slog.Logger
}

// NewService constructs a new admin [Service] with its dependencies.
func NewService(
	repo Repository,
	statsCache StatsCache,
	users auth.UserRepository,
	backups BackupRepository,
	dumper Dumper,
	restorer Restorer,
	backupDir string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		statsCache: statsCache,
		users:      users,
		backups:    backups,
		dumper:     dumper,
		restorer:   restorer,
		backupDir:  backupDir,
		logger:     logger,
	}
}

// # Dashboard

/*
GetStats returns the dashboard aggregate, served from cache when fresh.

Description: Cache misses and cache failures both fall through to the live
aggregate; a failed cache write is logged and ignored.

Parameters:
  - context: context.Context

Returns:
  - *DashboardStats: Counters plus the recent activity feed
  - error: Aggregate computation failures
*/
func (service *Service) GetStats(context context.Context) (*DashboardStats, error) {
	if stats, err := service.statsCache.Get(context); err == nil {
		return stats, nil
	}

	stats, err := service.repo.CollectStats(context)
	if err != nil {
		return nil, err
	}

	if err := service.statsCache.Set(context, stats); err != nil {
		service.logger.Warn("admin_stats_cache_set_failed", slog.String("error", err.Error()))
	}

	return stats, nil
}

// # Member Management

func (service *Service) ListUsers(context context.Context, search string, limit, offset int) ([]*UserRow, int, error) {
	return service.repo.ListUsers(context, search, limit, offset)
}

/*
UpdateUserRole replaces a member's role.

Description: The role enum is closed. Admins cannot change their own role,
which keeps at least one admin reachable at all times.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - userID: int64
  - role: string

Returns:
  - error: Validation, self-demotion, or storage failures
*/
func (service *Service) UpdateUserRole(context context.Context, actor *sec.Identity, userID int64, role string) error {
	if !sec.ValidRole(role) {
		return apperr.ValidationError("Invalid role")
	}
	if actor != nil && actor.ID == userID {
		return apperr.Forbidden("You cannot change your own role")
	}

	if err := service.users.UpdateRole(context, userID, sec.UserRole(role)); err != nil {
		return err
	}

	service.logger.Info("user_role_updated",
		slog.Int64("user_id", userID),
		slog.String("role", role))
	return nil
}

/*
UpdateUserStatus replaces a member's moderation status.

Description: The status enum is closed. Admins cannot suspend or ban
themselves.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - userID: int64
  - status: string

Returns:
  - error: Validation, self-targeting, or storage failures
*/
func (service *Service) UpdateUserStatus(context context.Context, actor *sec.Identity, userID int64, status string) error {
	if !sec.ValidStatus(status) {
		return apperr.ValidationError("Invalid status")
	}
	if actor != nil && actor.ID == userID {
		return apperr.Forbidden("You cannot change your own status")
	}

	if err := service.users.UpdateStatus(context, userID, sec.UserStatus(status)); err != nil {
		return err
	}

	service.logger.Info("user_status_updated",
		slog.Int64("user_id", userID),
		slog.String("status", status))
	return nil
}

// # Backups

/*
CreateBackup dumps the database to disk and records the artifact.

Parameters:
  - context: context.Context
  - actor: *sec.Identity
  - notes: *string

Returns:
  - *Backup: Recorded backup row
  - error: Dump or persistence failures
*/
func (service *Service) CreateBackup(context context.Context, actor *sec.Identity, notes *string) (*Backup, error) {
	filename := backupFilename(time.Now())
	destPath := filepath.Join(service.backupDir, filename)

	if err := service.dumper.Dump(context, destPath); err != nil {
		return nil, fmt.Errorf("admin_service_backup_dump_failed: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("admin_service_backup_stat_failed: %w", err)
	}

	backup := &Backup{
		Filename: filename,
		Filepath: destPath,
		Size:     info.Size(),
		Type:     BackupTypeFull,
		Notes:    notes,
	}
	if actor != nil {
		backup.CreatedBy = &actor.ID
	}

	if err := service.backups.CreateBackup(context, backup); err != nil {
		// The row is the source of truth. Remove the orphaned file.
		_ = os.Remove(destPath)
		return nil, err
	}

	service.logger.Info("backup_created",
		slog.Int64("backup_id", backup.ID),
		slog.String("filename", filename),
		slog.Int64("size", backup.Size))
	return backup, nil
}

func (service *Service) ListBackups(context context.Context) ([]*Backup, error) {
	return service.backups.ListBackups(context)
}

/*
BackupFile resolves a backup ID to its on-disk artifact for download.

Returns:
  - *Backup: Backup row
  - error: NotFound when the row or the file is gone
*/
func (service *Service) BackupFile(context context.Context, id int64) (*Backup, error) {
	backup, err := service.backups.GetBackupByID(context, id)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(backup.Filepath); err != nil {
		return nil, apperr.NotFound("Backup file is missing from disk")
	}

	return backup, nil
}

/*
RestoreBackup replays a recorded dump into the database.

Description: Destructive. The dump is applied with --clean semantics, so
current data is replaced by the backup contents.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: NotFound or restore failures
*/
func (service *Service) RestoreBackup(context context.Context, id int64) error {
	backup, err := service.BackupFile(context, id)
	if err != nil {
		return err
	}

	if err := service.restorer.Restore(context, backup.Filepath); err != nil {
		return fmt.Errorf("admin_service_restore_failed: %w", err)
	}

	service.logger.Warn("backup_restored",
		slog.Int64("backup_id", id),
		slog.String("filename", backup.Filename))
	return nil
}

/*
DeleteBackup removes the backup row and its file.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: NotFound or deletion failures
*/
func (service *Service) DeleteBackup(context context.Context, id int64) error {
	backup, err := service.backups.GetBackupByID(context, id)
	if err != nil {
		return err
	}

	if err := service.backups.DeleteBackup(context, id); err != nil {
		return err
	}

	// Row first, file second. A leftover file is recoverable; a dangling row is not.
	if err := os.Remove(backup.Filepath); err != nil && !os.IsNotExist(err) {
		service.logger.Warn("backup_file_remove_failed",
			slog.Int64("backup_id", id),
			slog.String("error", err.Error()))
	}

	service.logger.Info("backup_deleted", slog.Int64("backup_id", id))
	return nil
}
