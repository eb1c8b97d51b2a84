package category

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, COUNT(t.%s)
		FROM %s c
		LEFT JOIN %s t ON t.%s = c.%s
		GROUP BY c.%s
		ORDER BY c.%s ASC
	`,
		schema.Categories.ID, schema.Categories.Name, schema.Categories.Description, schema.Categories.Slug, schema.Categories.CreatedAt,
		schema.Topics.ID,
		schema.Categories.Table,
		schema.Topics.Table, schema.Topics.CategoryID, schema.Categories.ID,
		schema.Categories.ID,
		schema.Categories.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt, &c.TopicsCount); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) GetCategoryByID(context context.Context, id int64) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s t WHERE t.%s = c.%s)
		FROM %s c
		WHERE c.%s = $1
	`,
		schema.Categories.ID, schema.Categories.Name, schema.Categories.Description, schema.Categories.Slug, schema.Categories.CreatedAt,
		schema.Topics.Table, schema.Topics.CategoryID, schema.Categories.ID,
		schema.Categories.Table, schema.Categories.ID,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt, &c.TopicsCount)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_id")
	}

	return c, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s t WHERE t.%s = c.%s)
		FROM %s c
		WHERE c.%s = $1
	`,
		schema.Categories.ID, schema.Categories.Name, schema.Categories.Description, schema.Categories.Slug, schema.Categories.CreatedAt,
		schema.Topics.Table, schema.Topics.CategoryID, schema.Categories.ID,
		schema.Categories.Table, schema.Categories.Slug,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt, &c.TopicsCount)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.Categories.Table, schema.Categories.Name, schema.Categories.Description, schema.Categories.Slug,
		schema.Categories.ID, schema.Categories.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, category.Name, category.Description, category.Slug).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}

	return nil
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, category *Category) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		schema.Categories.Table, schema.Categories.Name, schema.Categories.Description, schema.Categories.Slug,
		schema.Categories.ID,
	)

	tag, err := repository.db.Exec(context, query, category.ID, category.Name, category.Description, category.Slug)
	if err != nil {
		return dberr.Wrap(err, "update_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Categories.Table, schema.Categories.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}
