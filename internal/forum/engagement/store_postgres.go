package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/database/schema"
	"github.com/paddockhq/paddock/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ToggleTopicLike(context context.Context, topicID, userID int64) (*LikeResult, error) {
	return repository.toggle(context, toggleTarget{
		table:       schema.Topics.Table,
		counter:     schema.Topics.Likes,
		id:          schema.Topics.ID,
		ledger:      schema.TopicLikes.Table,
		ledgerRef:   schema.TopicLikes.TopicID,
		ledgerUser:  schema.TopicLikes.UserID,
		notFoundMsg: "Topic not found",
	}, topicID, userID)
}

func (repository *PostgresRepository) ToggleCommentLike(context context.Context, commentID, userID int64) (*LikeResult, error) {
	return repository.toggle(context, toggleTarget{
		table:       schema.Comments.Table,
		counter:     schema.Comments.Likes,
		id:          schema.Comments.ID,
		ledger:      schema.CommentLikes.Table,
		ledgerRef:   schema.CommentLikes.CommentID,
		ledgerUser:  schema.CommentLikes.UserID,
		notFoundMsg: "Comment not found",
	}, commentID, userID)
}

// toggleTarget abstracts the two structurally identical like ledgers.
type toggleTarget struct {
	table       string
	counter     string
	id          string
	ledger      string
	ledgerRef   string
	ledgerUser  string
	notFoundMsg string
}

// toggle flips the (resource, user) row in the ledger and keeps the
// denormalized counter in step. The parent row is locked first, so
// concurrent toggles on the same resource serialize instead of double
// counting, and the ledger's unique constraint backstops the counter.
func (repository *PostgresRepository) toggle(context context.Context, target toggleTarget, resourceID, userID int64) (*LikeResult, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	lock := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE",
		target.counter, target.table, target.id)

	var likes int
	if err := transaction.QueryRow(context, lock, resourceID).Scan(&likes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(target.notFoundMsg)
		}
		return nil, dberr.Wrap(err, "lock_like_target")
	}

	exists := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		target.ledger, target.ledgerRef, target.ledgerUser)

	var liked bool
	if err := transaction.QueryRow(context, exists, resourceID, userID).Scan(&liked); err != nil {
		return nil, dberr.Wrap(err, "check_like")
	}

	result := &LikeResult{}
	if liked {
		remove := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
			target.ledger, target.ledgerRef, target.ledgerUser)
		if _, err := transaction.Exec(context, remove, resourceID, userID); err != nil {
			return nil, dberr.Wrap(err, "remove_like")
		}

		// Floor at zero so a drifted counter can never go negative.
		drop := fmt.Sprintf("UPDATE %s SET %s = GREATEST(%s - 1, 0) WHERE %s = $1 RETURNING %s",
			target.table, target.counter, target.counter, target.id, target.counter)
		if err := transaction.QueryRow(context, drop, resourceID).Scan(&result.Likes); err != nil {
			return nil, dberr.Wrap(err, "drop_like_counter")
		}
		result.Liked = false
	} else {
		// ON CONFLICT keeps the toggle idempotent even if the existence check
		// raced with another insert on a different connection.
		add := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			target.ledger, target.ledgerRef, target.ledgerUser)
		tag, err := transaction.Exec(context, add, resourceID, userID)
		if err != nil {
			return nil, dberr.Wrap(err, "add_like")
		}

		bump := fmt.Sprintf("UPDATE %s SET %s = %s + $2 WHERE %s = $1 RETURNING %s",
			target.table, target.counter, target.counter, target.id, target.counter)
		if err := transaction.QueryRow(context, bump, resourceID, tag.RowsAffected()).Scan(&result.Likes); err != nil {
			return nil, dberr.Wrap(err, "bump_like_counter")
		}
		result.Liked = true
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return result, nil
}
