// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package admin implements the moderation and operations panel.

It aggregates dashboard statistics, manages member roles and statuses, and
drives database backups. Every endpoint is gated behind staff or admin roles.
*/
package admin

import (
	"time"

	"github.com/paddockhq/paddock/internal/platform/sec"
)

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	Users            int            `json:"users"`
	Topics           int            `json:"topics"`
	Comments         int            `json:"comments"`
	Likes            int            `json:"likes"`
	Races            int            `json:"races"`
	BannedUsers      int            `json:"banned_users"`
	NewUsersToday    int            `json:"new_users_today"`
	NewTopicsToday   int            `json:"new_topics_today"`
	NewCommentsToday int            `json:"new_comments_today"`
	RecentActivity   []ActivityItem `json:"recent_activity"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

// ActivityItem is one row in the cross-entity recent activity feed.
type ActivityItem struct {
	Type      string    `json:"type"` // topic | comment | user
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRow is the member listing projection for the admin panel.
type UserRow struct {
	ID            int64          `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	Role          sec.UserRole   `json:"role"`
	Status        sec.UserStatus `json:"status"`
	LastLogin     *time.Time     `json:"last_login"`
	LoginCount    int            `json:"login_count"`
	CreatedAt     time.Time      `json:"created_at"`
	TopicsCount   int            `json:"topics_count"`
	CommentsCount int            `json:"comments_count"`
}

// Backup is a recorded database dump on disk.
type Backup struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy *int64    `json:"created_by"`
	Type      string    `json:"type"`
	Notes     *string   `json:"notes"`
}

const (
	BackupTypeFull = "full"

	// ActivityFeedSize bounds the recent activity feed.
	ActivityFeedSize = 10
)
