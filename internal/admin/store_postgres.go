// Copyright (c) 2026 Paddock. All rights reserved.

package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/database/schema"
	"github.com/paddockhq/paddock/internal/platform/dberr"
)

// # Aggregation Repository

// PostgresRepository implements the admin read-side over pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
CollectStats computes the dashboard aggregate in two queries: one scalar
pass over the counters and one UNION over the newest entities.

Parameters:
  - context: context.Context

Returns:
  - *DashboardStats: Fully hydrated aggregate
  - error: Execution failures
*/
func (repository *PostgresRepository) CollectStats(context context.Context) (*DashboardStats, error) {
	counters := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s) + (SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s WHERE %s = 'banned'),
			(SELECT COUNT(*) FROM %s WHERE %s::date = CURRENT_DATE),
			(SELECT COUNT(*) FROM %s WHERE %s::date = CURRENT_DATE),
			(SELECT COUNT(*) FROM %s WHERE %s::date = CURRENT_DATE)`,
		schema.Users.Table, schema.Topics.Table, schema.Comments.Table,
		schema.TopicLikes.Table, schema.CommentLikes.Table,
		schema.GrandPrix.Table,
		schema.Users.Table, schema.Users.Status,
		schema.Users.Table, schema.Users.CreatedAt,
		schema.Topics.Table, schema.Topics.CreatedAt,
		schema.Comments.Table, schema.Comments.CreatedAt,
	)

	stats := &DashboardStats{GeneratedAt: time.Now()}
	err := repository.pool.QueryRow(context, counters).Scan(
		&stats.Users, &stats.Topics, &stats.Comments, &stats.Likes,
		&stats.Races, &stats.BannedUsers,
		&stats.NewUsersToday, &stats.NewTopicsToday, &stats.NewCommentsToday,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "collect_stats_counters")
	}

	// One chronological feed over the three entity types.
	feed := fmt.Sprintf(`
		SELECT * FROM (
			SELECT 'topic' AS type, t.%s AS id, t.%s AS title, u.%s AS username, t.%s AS created_at
			FROM %s t JOIN %s u ON t.%s = u.%s
			UNION ALL
			SELECT 'comment', c.%s, LEFT(c.%s, 80), u.%s, c.%s
			FROM %s c JOIN %s u ON c.%s = u.%s
			UNION ALL
			SELECT 'user', %s, %s, %s, %s FROM %s
		) activity
		ORDER BY created_at DESC
		LIMIT $1`,
		schema.Topics.ID, schema.Topics.Title, schema.Users.Username, schema.Topics.CreatedAt,
		schema.Topics.Table, schema.Users.Table, schema.Topics.UserID, schema.Users.ID,
		schema.Comments.ID, schema.Comments.Content, schema.Users.Username, schema.Comments.CreatedAt,
		schema.Comments.Table, schema.Users.Table, schema.Comments.UserID, schema.Users.ID,
		schema.Users.ID, schema.Users.Username, schema.Users.Username, schema.Users.CreatedAt, schema.Users.Table,
	)

	rows, err := repository.pool.Query(context, feed, ActivityFeedSize)
	if err != nil {
		return nil, dberr.Wrap(err, "collect_stats_activity")
	}
	defer rows.Close()

	stats.RecentActivity = make([]ActivityItem, 0, ActivityFeedSize)
	for rows.Next() {
		item := ActivityItem{}
		if err := rows.Scan(&item.Type, &item.ID, &item.Title, &item.Username, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_activity_item")
		}
		stats.RecentActivity = append(stats.RecentActivity, item)
	}

	return stats, nil
}

/*
ListUsers returns a page of member rows for the admin panel.

Parameters:
  - context: context.Context
  - search: string (matches username or email, case-insensitive)
  - limit: int
  - offset: int

Returns:
  - []*UserRow: Page of members with contribution counters
  - int: Total matching members
  - error: Execution failures
*/
func (repository *PostgresRepository) ListUsers(context context.Context, search string, limit, offset int) ([]*UserRow, int, error) {
	conditions := ""
	args := []any{}
	if search != "" {
		args = append(args, "%"+strings.TrimSpace(search)+"%")
		conditions = fmt.Sprintf(" WHERE u.%s ILIKE $1 OR u.%s ILIKE $1",
			schema.Users.Username, schema.Users.Email)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s u%s", schema.Users.Table, conditions)
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT u.%s, u.%s, u.%s, u.%s, u.%s, u.%s, u.%s, u.%s,
		       (SELECT COUNT(*) FROM %s t WHERE t.%s = u.%s),
		       (SELECT COUNT(*) FROM %s c WHERE c.%s = u.%s)
		FROM %s u%s
		ORDER BY u.%s DESC
		LIMIT $%d OFFSET $%d`,
		schema.Users.ID, schema.Users.Username, schema.Users.Email,
		schema.Users.Role, schema.Users.Status,
		schema.Users.LastLogin, schema.Users.LoginCount, schema.Users.CreatedAt,
		schema.Topics.Table, schema.Topics.UserID, schema.Users.ID,
		schema.Comments.Table, schema.Comments.UserID, schema.Users.ID,
		schema.Users.Table, conditions,
		schema.Users.CreatedAt,
		len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*UserRow, 0)
	for rows.Next() {
		row := &UserRow{}
		err := rows.Scan(
			&row.ID, &row.Username, &row.Email, &row.Role, &row.Status,
			&row.LastLogin, &row.LoginCount, &row.CreatedAt,
			&row.TopicsCount, &row.CommentsCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user_row")
		}
		users = append(users, row)
	}

	return users, total, nil
}

// # Backup Repository

// PostgresBackupRepository implements BackupRepository using pgx.
type PostgresBackupRepository struct {
	pool *pgxpool.Pool
}

// NewBackupRepository creates a new PostgreSQL implementation of BackupRepository.
func NewBackupRepository(pool *pgxpool.Pool) *PostgresBackupRepository {
	return &PostgresBackupRepository{pool: pool}
}

func (repository *PostgresBackupRepository) CreateBackup(context context.Context, backup *Backup) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.Backups.Table,
		schema.Backups.Filename, schema.Backups.Filepath, schema.Backups.Size,
		schema.Backups.CreatedBy, schema.Backups.Type, schema.Backups.Notes,
		schema.Backups.ID, schema.Backups.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		backup.Filename, backup.Filepath, backup.Size,
		backup.CreatedBy, backup.Type, backup.Notes,
	).Scan(&backup.ID, &backup.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "create_backup")
	}
	return nil
}

func (repository *PostgresBackupRepository) ListBackups(context context.Context) ([]*Backup, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, 0), %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC`,
		schema.Backups.ID, schema.Backups.Filename, schema.Backups.Filepath,
		schema.Backups.Size, schema.Backups.CreatedAt, schema.Backups.CreatedBy,
		schema.Backups.Type, schema.Backups.Notes,
		schema.Backups.Table, schema.Backups.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_backups")
	}
	defer rows.Close()

	backups := make([]*Backup, 0)
	for rows.Next() {
		b := &Backup{}
		err := rows.Scan(&b.ID, &b.Filename, &b.Filepath, &b.Size, &b.CreatedAt, &b.CreatedBy, &b.Type, &b.Notes)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_backup")
		}
		backups = append(backups, b)
	}

	return backups, nil
}

func (repository *PostgresBackupRepository) GetBackupByID(context context.Context, id int64) (*Backup, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, 0), %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		schema.Backups.ID, schema.Backups.Filename, schema.Backups.Filepath,
		schema.Backups.Size, schema.Backups.CreatedAt, schema.Backups.CreatedBy,
		schema.Backups.Type, schema.Backups.Notes,
		schema.Backups.Table, schema.Backups.ID,
	)

	b := &Backup{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&b.ID, &b.Filename, &b.Filepath, &b.Size, &b.CreatedAt, &b.CreatedBy, &b.Type, &b.Notes)
	if err != nil {
		return nil, dberr.Wrap(err, "get_backup_by_id")
	}

	return b, nil
}

func (repository *PostgresBackupRepository) DeleteBackup(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Backups.Table, schema.Backups.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_backup")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Backup not found")
	}
	return nil
}
