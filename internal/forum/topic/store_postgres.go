package topic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/database/schema"
	"github.com/paddockhq/paddock/internal/platform/dberr"
	"github.com/paddockhq/paddock/pkg/query"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// topicSelect joins the author and category presentation fields onto
// every topic row.
func topicSelect() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, COALESCE(t.%s, ''), t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       u.%s, COALESCE(u.%s, ''), c.%s, c.%s
		FROM %s t
		JOIN %s u ON t.%s = u.%s
		LEFT JOIN %s c ON t.%s = c.%s`,
		schema.Topics.ID, schema.Topics.Title, schema.Topics.Content, schema.Topics.Tags,
		schema.Topics.Views, schema.Topics.Likes, schema.Topics.CommentsCount,
		schema.Topics.IsPinned, schema.Topics.IsLocked,
		schema.Topics.CreatedAt, schema.Topics.UpdatedAt,
		schema.Topics.UserID, schema.Topics.CategoryID,
		schema.Users.Username, schema.Users.AvatarURL,
		schema.Categories.Name, schema.Categories.Slug,
		schema.Topics.Table,
		schema.Users.Table, schema.Topics.UserID, schema.Users.ID,
		schema.Categories.Table, schema.Topics.CategoryID, schema.Categories.ID,
	)
}

func scanTopic(row pgx.Row) (*Topic, error) {
	t := &Topic{}
	var tags string
	err := row.Scan(
		&t.ID, &t.Title, &t.Content, &tags,
		&t.Views, &t.Likes, &t.CommentsCount,
		&t.IsPinned, &t.IsLocked,
		&t.CreatedAt, &t.UpdatedAt,
		&t.UserID, &t.CategoryID,
		&t.AuthorUsername, &t.AuthorAvatar,
		&t.CategoryName, &t.CategorySlug,
	)
	if err != nil {
		return nil, err
	}

	// Tags live in a single TEXT column as a comma-separated list.
	t.Tags = query.StringSlice(tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}

func (repository *PostgresRepository) ListTopics(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.Topics.CategoryID, len(args)))
	}
	if filter.Tag != "" {
		args = append(args, "%"+filter.Tag+"%")
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", schema.Topics.Tags, len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(t.%s ILIKE $%d OR t.%s ILIKE $%d)",
			schema.Topics.Title, len(args), schema.Topics.Content, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s t%s", schema.Topics.Table, where)
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_topics")
	}

	// Pinned topics always float to the top regardless of the sort key.
	orderBy := fmt.Sprintf("t.%s DESC, t.%s DESC", schema.Topics.IsPinned, schema.Topics.CreatedAt)
	switch filter.Sort {
	case SortPopular:
		orderBy = fmt.Sprintf("t.%s DESC, t.%s DESC, t.%s DESC", schema.Topics.IsPinned, schema.Topics.Likes, schema.Topics.CreatedAt)
	case SortMostViewed:
		orderBy = fmt.Sprintf("t.%s DESC, t.%s DESC, t.%s DESC", schema.Topics.IsPinned, schema.Topics.Views, schema.Topics.CreatedAt)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		topicSelect(), where, orderBy, len(args)-1, len(args))

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_topics")
	}
	defer rows.Close()

	topics := make([]*Topic, 0)
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_topic")
		}
		topics = append(topics, t)
	}

	return topics, total, nil
}

func (repository *PostgresRepository) GetTopicByID(context context.Context, id int64) (*Topic, error) {
	q := topicSelect() + fmt.Sprintf(" WHERE t.%s = $1", schema.Topics.ID)

	t, err := scanTopic(repository.db.QueryRow(context, q, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_topic_by_id")
	}

	return t, nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id int64) error {
	q := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1",
		schema.Topics.Table, schema.Topics.Views, schema.Topics.Views, schema.Topics.ID)

	if _, err := repository.db.Exec(context, q, id); err != nil {
		return dberr.Wrap(err, "increment_topic_views")
	}
	return nil
}

func (repository *PostgresRepository) CreateTopic(context context.Context, topic *Topic) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING %s, %s, %s`,
		schema.Topics.Table,
		schema.Topics.Title, schema.Topics.Content, schema.Topics.Tags,
		schema.Topics.UserID, schema.Topics.CategoryID,
		schema.Topics.ID, schema.Topics.CreatedAt, schema.Topics.UpdatedAt,
	)

	err := repository.db.QueryRow(context, q,
		topic.Title,
		topic.Content,
		strings.Join(topic.Tags, ","),
		topic.UserID,
		topic.CategoryID,
	).Scan(&topic.ID, &topic.CreatedAt, &topic.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create_topic")
	}
	return nil
}

func (repository *PostgresRepository) UpdateTopic(context context.Context, topic *Topic) error {
	q := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NULLIF($4, ''), %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.Topics.Table,
		schema.Topics.Title, schema.Topics.Content, schema.Topics.Tags, schema.Topics.CategoryID,
		schema.Topics.UpdatedAt,
		schema.Topics.ID,
		schema.Topics.UpdatedAt,
	)

	err := repository.db.QueryRow(context, q,
		topic.ID,
		topic.Title,
		topic.Content,
		strings.Join(topic.Tags, ","),
		topic.CategoryID,
	).Scan(&topic.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "update_topic")
	}
	return nil
}

func (repository *PostgresRepository) DeleteTopic(context context.Context, id int64) error {
	// Comments and like ledgers are removed by ON DELETE CASCADE.
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Topics.Table, schema.Topics.ID)

	tag, err := repository.db.Exec(context, q, id)
	if err != nil {
		return dberr.Wrap(err, "delete_topic")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Topic not found")
	}
	return nil
}

func (repository *PostgresRepository) SetPinned(context context.Context, id int64, pinned bool) error {
	q := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.Topics.Table, schema.Topics.IsPinned, schema.Topics.UpdatedAt, schema.Topics.ID)

	tag, err := repository.db.Exec(context, q, id, pinned)
	if err != nil {
		return dberr.Wrap(err, "set_topic_pinned")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Topic not found")
	}
	return nil
}

func (repository *PostgresRepository) SetLocked(context context.Context, id int64, locked bool) error {
	q := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.Topics.Table, schema.Topics.IsLocked, schema.Topics.UpdatedAt, schema.Topics.ID)

	tag, err := repository.db.Exec(context, q, id, locked)
	if err != nil {
		return dberr.Wrap(err, "set_topic_locked")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Topic not found")
	}
	return nil
}
