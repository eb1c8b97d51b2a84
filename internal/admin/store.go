// Copyright (c) 2026 Paddock. All rights reserved.

package admin

import "context"

// # Aggregation Data Access

// Repository defines the read-side contract for the admin dashboard.
type Repository interface {

	/*
		CollectStats computes the dashboard aggregate from live tables.

		Parameters:
		  - context: context.Context

		Returns:
		  - *DashboardStats: Counters plus the recent activity feed
		  - error: Database retrieval failures
	*/
	CollectStats(context context.Context) (*DashboardStats, error)

	/*
		ListUsers returns a page of member rows, optionally filtered by a
		username or email search term.

		Parameters:
		  - context: context.Context
		  - search: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*UserRow: Page of members
		  - int: Total matching members
		  - error: Database retrieval failures
	*/
	ListUsers(context context.Context, search string, limit, offset int) ([]*UserRow, int, error)
}

// StatsCache is the volatile layer in front of CollectStats.
type StatsCache interface {
	Get(context context.Context) (*DashboardStats, error)
	Set(context context.Context, stats *DashboardStats) error
}

// # Backup Data Access

// BackupRepository defines the data access contract for backup records.
type BackupRepository interface {
	CreateBackup(context context.Context, backup *Backup) error
	ListBackups(context context.Context) ([]*Backup, error)
	GetBackupByID(context context.Context, id int64) (*Backup, error)
	DeleteBackup(context context.Context, id int64) error
}
