package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paddockhq/paddock/internal/platform/database/schema"
	"github.com/paddockhq/paddock/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func commentSelect() string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       u.%s, COALESCE(u.%s, '')
		FROM %s c
		JOIN %s u ON c.%s = u.%s`,
		schema.Comments.ID, schema.Comments.Content, schema.Comments.Likes,
		schema.Comments.UserID, schema.Comments.ParentID, schema.Comments.TopicID,
		schema.Comments.CreatedAt, schema.Comments.UpdatedAt,
		schema.Users.Username, schema.Users.AvatarURL,
		schema.Comments.Table,
		schema.Users.Table, schema.Comments.UserID, schema.Users.ID,
	)
}

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(
		&c.ID, &c.Content, &c.Likes,
		&c.UserID, &c.ParentID, &c.TopicID,
		&c.CreatedAt, &c.UpdatedAt,
		&c.AuthorUsername, &c.AuthorAvatar,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByTopic returns the comment tree for a topic: top-level comments in
// chronological order, each carrying its replies in chronological order.
// The id tiebreaker keeps comments sharing a timestamp in insertion order.
func (repository *PostgresRepository) ListByTopic(context context.Context, topicID int64) ([]*Comment, error) {
	q := commentSelect() + fmt.Sprintf(" WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC",
		schema.Comments.TopicID, schema.Comments.CreatedAt, schema.Comments.ID)

	rows, err := repository.db.Query(context, q, topicID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	flat := make([]*Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		flat = append(flat, c)
	}

	return BuildThread(flat), nil
}

func (repository *PostgresRepository) GetCommentByID(context context.Context, id int64) (*Comment, error) {
	q := commentSelect() + fmt.Sprintf(" WHERE c.%s = $1", schema.Comments.ID)

	c, err := scanComment(repository.db.QueryRow(context, q, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}

	return c, nil
}

// CreateComment inserts the comment and bumps the topic's comment counter
// inside one transaction.
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.Comments.Table,
		schema.Comments.Content, schema.Comments.UserID, schema.Comments.ParentID, schema.Comments.TopicID,
		schema.Comments.ID, schema.Comments.CreatedAt, schema.Comments.UpdatedAt,
	)

	err = transaction.QueryRow(context, insert,
		comment.Content, comment.UserID, comment.ParentID, comment.TopicID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	bump := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.Topics.Table, schema.Topics.CommentsCount, schema.Topics.CommentsCount, schema.Topics.ID)
	if _, err := transaction.Exec(context, bump, comment.TopicID); err != nil {
		return dberr.Wrap(err, "bump_comments_count")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	q := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s",
		schema.Comments.Table, schema.Comments.Content, schema.Comments.UpdatedAt,
		schema.Comments.ID, schema.Comments.UpdatedAt)

	err := repository.db.QueryRow(context, q, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	return nil
}

// DeleteCascade removes the comment and everything hanging off it. The order
// matters: reply likes, replies, own likes, the comment itself, then the
// topic counter, all inside one transaction so a failure leaves no orphans.
func (repository *PostgresRepository) DeleteCascade(context context.Context, id int64) (int, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	var topicID int64
	locate := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.Comments.TopicID, schema.Comments.Table, schema.Comments.ID)
	if err := transaction.QueryRow(context, locate, id).Scan(&topicID); err != nil {
		return 0, dberr.Wrap(err, "locate_comment")
	}

	replyLikes := fmt.Sprintf(`
		DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)`,
		schema.CommentLikes.Table, schema.CommentLikes.CommentID,
		schema.Comments.ID, schema.Comments.Table, schema.Comments.ParentID,
	)
	if _, err := transaction.Exec(context, replyLikes, id); err != nil {
		return 0, dberr.Wrap(err, "delete_reply_likes")
	}

	replies := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.Comments.Table, schema.Comments.ParentID)
	replyTag, err := transaction.Exec(context, replies, id)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_replies")
	}

	ownLikes := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CommentLikes.Table, schema.CommentLikes.CommentID)
	if _, err := transaction.Exec(context, ownLikes, id); err != nil {
		return 0, dberr.Wrap(err, "delete_comment_likes")
	}

	own := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.Comments.Table, schema.Comments.ID)
	if _, err := transaction.Exec(context, own, id); err != nil {
		return 0, dberr.Wrap(err, "delete_comment")
	}

	removed := int(replyTag.RowsAffected()) + 1

	// Counter floor at zero, mirroring the like ledger behavior.
	drop := fmt.Sprintf("UPDATE %s SET %s = GREATEST(%s - $2, 0) WHERE %s = $1",
		schema.Topics.Table, schema.Topics.CommentsCount, schema.Topics.CommentsCount, schema.Topics.ID)
	if _, err := transaction.Exec(context, drop, topicID, removed); err != nil {
		return 0, dberr.Wrap(err, "drop_comments_count")
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit transaction: %w", err)
	}
	return removed, nil
}
