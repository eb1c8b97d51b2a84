// Copyright (c) 2026 Paddock. All rights reserved.

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/admin"
	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/users/auth"
	"github.com/paddockhq/paddock/pkg/pointer"
)

// # Test Doubles

type stubRepository struct {
	stats *admin.DashboardStats
	hits  int
}

func (r *stubRepository) CollectStats(context.Context) (*admin.DashboardStats, error) {
	r.hits++
	return r.stats, nil
}

func (r *stubRepository) ListUsers(context.Context, string, int, int) ([]*admin.UserRow, int, error) {
	return nil, 0, nil
}

type stubStatsCache struct {
	stats *admin.DashboardStats
	sets  int
}

func (c *stubStatsCache) Get(context.Context) (*admin.DashboardStats, error) {
	if c.stats == nil {
		return nil, apperr.NotFound("cache miss")
	}
	return c.stats, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *admin.DashboardStats) error {
	c.stats = stats
	c.sets++
	return nil
}

// stubUserRepository records the role and status writes the admin service makes.
type stubUserRepository struct {
	roles    map[int64]sec.UserRole
	statuses map[int64]sec.UserStatus
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{
		roles:    map[int64]sec.UserRole{},
		statuses: map[int64]sec.UserStatus{},
	}
}

func (r *stubUserRepository) UpdateRole(_ context.Context, id int64, role sec.UserRole) error {
	r.roles[id] = role
	return nil
}

func (r *stubUserRepository) UpdateStatus(_ context.Context, id int64, status sec.UserStatus) error {
	r.statuses[id] = status
	return nil
}

func (r *stubUserRepository) FindByID(context.Context, int64) (*auth.User, error) {
	return nil, apperr.NotFound("User not found")
}

func (r *stubUserRepository) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, apperr.NotFound("User not found")
}

func (r *stubUserRepository) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, apperr.NotFound("User not found")
}

func (r *stubUserRepository) Create(context.Context, *auth.User) error        { return nil }
func (r *stubUserRepository) UpdateProfile(context.Context, *auth.User) error { return nil }
func (r *stubUserRepository) RecordLogin(context.Context, int64) error        { return nil }
func (r *stubUserRepository) Stats(context.Context, int64) (*auth.Stats, error) {
	return &auth.Stats{}, nil
}

type memoryBackupRepository struct {
	backups map[int64]*admin.Backup
	nextID  int64
	failing bool
}

func newMemoryBackupRepository() *memoryBackupRepository {
	return &memoryBackupRepository{backups: map[int64]*admin.Backup{}, nextID: 1}
}

func (r *memoryBackupRepository) CreateBackup(_ context.Context, backup *admin.Backup) error {
	if r.failing {
		return assert.AnError
	}
	backup.ID = r.nextID
	r.nextID++
	r.backups[backup.ID] = backup
	return nil
}

func (r *memoryBackupRepository) ListBackups(context.Context) ([]*admin.Backup, error) {
	list := make([]*admin.Backup, 0, len(r.backups))
	for _, b := range r.backups {
		list = append(list, b)
	}
	return list, nil
}

func (r *memoryBackupRepository) GetBackupByID(_ context.Context, id int64) (*admin.Backup, error) {
	backup, ok := r.backups[id]
	if !ok {
		return nil, apperr.NotFound("Backup not found")
	}
	return backup, nil
}

func (r *memoryBackupRepository) DeleteBackup(_ context.Context, id int64) error {
	if _, ok := r.backups[id]; !ok {
		return apperr.NotFound("Backup not found")
	}
	delete(r.backups, id)
	return nil
}

// fileDumper writes a small file so the service's stat check passes.
type fileDumper struct {
	dumps    []string
	restores []string
}

func (d *fileDumper) Dump(_ context.Context, destPath string) error {
	d.dumps = append(d.dumps, destPath)
	return os.WriteFile(destPath, []byte("-- pg_dump output\n"), 0o644)
}

func (d *fileDumper) Restore(_ context.Context, sourcePath string) error {
	d.restores = append(d.restores, sourcePath)
	return nil
}

type fixture struct {
	service *admin.Service
	repo    *stubRepository
	cache   *stubStatsCache
	users   *stubUserRepository
	backups *memoryBackupRepository
	tool    *fileDumper
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:    &stubRepository{stats: &admin.DashboardStats{Users: 12, Topics: 4, GeneratedAt: time.Now()}},
		cache:   &stubStatsCache{},
		users:   newStubUserRepository(),
		backups: newMemoryBackupRepository(),
		tool:    &fileDumper{},
		dir:     t.TempDir(),
	}
	f.service = admin.NewService(
		f.repo, f.cache, f.users, f.backups, f.tool, f.tool, f.dir,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func admin1() *sec.Identity {
	return &sec.Identity{ID: 1, Username: "root", Role: sec.RoleAdmin, Status: sec.StatusActive}
}

// # Dashboard

/*
TestService_GetStats verifies the cache-aside flow: first call computes and
stores, second call is served from cache.
*/
func TestService_GetStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.service.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Users)
	assert.Equal(t, 1, f.repo.hits)
	assert.Equal(t, 1, f.cache.sets)

	_, err = f.service.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.hits)
}

// # Member Management

/*
TestService_UpdateUserRole verifies the closed role enum and the
self-demotion guard.
*/
func TestService_UpdateUserRole(t *testing.T) {
	tests := []struct {
		name     string
		targetID int64
		role     string
		wantCode string
	}{
		{"promote_member", 2, "moderator", ""},
		{"demote_member", 2, "user", ""},
		{"unknown_role", 2, "superuser", "VALIDATION_ERROR"},
		{"own_role", 1, "user", "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.service.UpdateUserRole(context.Background(), admin1(), tt.targetID, tt.role)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				assert.Empty(t, f.users.roles)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, sec.UserRole(tt.role), f.users.roles[tt.targetID])
		})
	}
}

/*
TestService_UpdateUserStatus verifies the closed status enum and the
self-ban guard.
*/
func TestService_UpdateUserStatus(t *testing.T) {
	tests := []struct {
		name     string
		targetID int64
		status   string
		wantCode string
	}{
		{"ban_member", 2, "banned", ""},
		{"reinstate_member", 2, "active", ""},
		{"unknown_status", 2, "deleted", "VALIDATION_ERROR"},
		{"own_status", 1, "banned", "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.service.UpdateUserStatus(context.Background(), admin1(), tt.targetID, tt.status)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				assert.Empty(t, f.users.statuses)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, sec.UserStatus(tt.status), f.users.statuses[tt.targetID])
		})
	}
}

// # Backups

/*
TestService_CreateBackup verifies the dump-then-record flow and the artifact
metadata captured on the row.
*/
func TestService_CreateBackup(t *testing.T) {
	f := newFixture(t)

	backup, err := f.service.CreateBackup(context.Background(), admin1(), pointer.To("pre-season snapshot"))
	require.NoError(t, err)

	// 1. The dump landed in the backup directory
	require.Len(t, f.tool.dumps, 1)
	assert.Equal(t, f.dir, filepath.Dir(backup.Filepath))
	assert.FileExists(t, backup.Filepath)

	// 2. Row metadata
	assert.Equal(t, admin.BackupTypeFull, backup.Type)
	assert.Positive(t, backup.Size)
	require.NotNil(t, backup.CreatedBy)
	assert.Equal(t, int64(1), *backup.CreatedBy)
	require.NotNil(t, backup.Notes)
	assert.Equal(t, "pre-season snapshot", *backup.Notes)
}

/*
TestService_CreateBackup_RowFailureRemovesFile verifies that a failed insert
does not leave an orphaned dump on disk.
*/
func TestService_CreateBackup_RowFailureRemovesFile(t *testing.T) {
	f := newFixture(t)
	f.backups.failing = true

	_, err := f.service.CreateBackup(context.Background(), admin1(), nil)
	require.Error(t, err)

	entries, readErr := os.ReadDir(f.dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

/*
TestService_RestoreBackup verifies that restore resolves the artifact and
hands its path to the restorer.
*/
func TestService_RestoreBackup(t *testing.T) {
	f := newFixture(t)
	backup, err := f.service.CreateBackup(context.Background(), admin1(), nil)
	require.NoError(t, err)

	require.NoError(t, f.service.RestoreBackup(context.Background(), backup.ID))
	require.Len(t, f.tool.restores, 1)
	assert.Equal(t, backup.Filepath, f.tool.restores[0])
}

/*
TestService_BackupFile_MissingFromDisk verifies that a recorded backup whose
file vanished is reported as NotFound.
*/
func TestService_BackupFile_MissingFromDisk(t *testing.T) {
	f := newFixture(t)
	backup, err := f.service.CreateBackup(context.Background(), admin1(), nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(backup.Filepath))

	_, err = f.service.BackupFile(context.Background(), backup.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
	assert.Equal(t, "Backup file is missing from disk", appError.Message)
}

/*
TestService_DeleteBackup verifies row-first deletion and file cleanup.
*/
func TestService_DeleteBackup(t *testing.T) {
	f := newFixture(t)
	backup, err := f.service.CreateBackup(context.Background(), admin1(), nil)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteBackup(context.Background(), backup.ID))
	assert.NoFileExists(t, backup.Filepath)
	assert.Empty(t, f.backups.backups)

	err = f.service.DeleteBackup(context.Background(), backup.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
