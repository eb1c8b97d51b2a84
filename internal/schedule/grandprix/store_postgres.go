package grandprix

import (
	"context"
	"fmt"
	"time"

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

func raceColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		schema.GrandPrix.ID, schema.GrandPrix.Name, schema.GrandPrix.Country,
		schema.GrandPrix.Circuit, schema.GrandPrix.RaceDate, schema.GrandPrix.Year,
		schema.GrandPrix.Round, schema.GrandPrix.IsCompleted)
}

func scanRace(row pgx.Row) (*GrandPrix, error) {
	race := &GrandPrix{}
	err := row.Scan(&race.ID, &race.Name, &race.Country, &race.Circuit, &race.RaceDate, &race.Year, &race.Round, &race.IsCompleted)
	if err != nil {
		return nil, err
	}
	return race, nil
}

func (repository *PostgresRepository) ListRaces(context context.Context, year int) ([]*GrandPrix, error) {
	q := fmt.Sprintf("SELECT %s FROM %s", raceColumns(), schema.GrandPrix.Table)
	args := []any{}
	if year > 0 {
		q += fmt.Sprintf(" WHERE %s = $1", schema.GrandPrix.Year)
		args = append(args, year)
	}
	q += fmt.Sprintf(" ORDER BY %s ASC", schema.GrandPrix.RaceDate)

	rows, err := repository.db.Query(context, q, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_races")
	}
	defer rows.Close()

	races := make([]*GrandPrix, 0)
	for rows.Next() {
		race, err := scanRace(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_race")
		}
		races = append(races, race)
	}

	return races, nil
}

func (repository *PostgresRepository) GetRaceByID(context context.Context, id int64) (*GrandPrix, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		raceColumns(), schema.GrandPrix.Table, schema.GrandPrix.ID)

	race, err := scanRace(repository.db.QueryRow(context, q, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_race_by_id")
	}

	return race, nil
}

// NextRace skips races already flagged completed, so a same-day race that has
// run does not resurface as the next one.
func (repository *PostgresRepository) NextRace(context context.Context, after time.Time) (*GrandPrix, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s >= $1 AND %s = FALSE ORDER BY %s ASC LIMIT 1",
		raceColumns(), schema.GrandPrix.Table, schema.GrandPrix.RaceDate, schema.GrandPrix.IsCompleted, schema.GrandPrix.RaceDate)

	race, err := scanRace(repository.db.QueryRow(context, q, after))
	if err != nil {
		return nil, dberr.Wrap(err, "next_race")
	}

	return race, nil
}

func (repository *PostgresRepository) UpcomingRaces(context context.Context, after time.Time, limit int) ([]*GrandPrix, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s >= $1 AND %s = FALSE ORDER BY %s ASC LIMIT $2",
		raceColumns(), schema.GrandPrix.Table, schema.GrandPrix.RaceDate, schema.GrandPrix.IsCompleted, schema.GrandPrix.RaceDate)

	rows, err := repository.db.Query(context, q, after, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "upcoming_races")
	}
	defer rows.Close()

	races := make([]*GrandPrix, 0)
	for rows.Next() {
		race, err := scanRace(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_race")
		}
		races = append(races, race)
	}

	return races, nil
}

func (repository *PostgresRepository) CreateRace(context context.Context, race *GrandPrix) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.GrandPrix.Table,
		schema.GrandPrix.Name, schema.GrandPrix.Country, schema.GrandPrix.Circuit,
		schema.GrandPrix.RaceDate, schema.GrandPrix.Year, schema.GrandPrix.Round,
		schema.GrandPrix.IsCompleted,
		schema.GrandPrix.ID,
	)

	err := repository.db.QueryRow(context, q,
		race.Name, race.Country, race.Circuit, race.RaceDate, race.Year, race.Round, race.IsCompleted,
	).Scan(&race.ID)
	if err != nil {
		return dberr.Wrap(err, "create_race")
	}
	return nil
}

func (repository *PostgresRepository) UpdateRace(context context.Context, race *GrandPrix) error {
	q := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.GrandPrix.Table,
		schema.GrandPrix.Name, schema.GrandPrix.Country, schema.GrandPrix.Circuit,
		schema.GrandPrix.RaceDate, schema.GrandPrix.Year, schema.GrandPrix.Round,
		schema.GrandPrix.IsCompleted,
		schema.GrandPrix.ID,
	)

	tag, err := repository.db.Exec(context, q,
		race.ID, race.Name, race.Country, race.Circuit, race.RaceDate, race.Year, race.Round, race.IsCompleted)
	if err != nil {
		return dberr.Wrap(err, "update_race")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Grand Prix not found")
	}
	return nil
}

func (repository *PostgresRepository) DeleteRace(context context.Context, id int64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.GrandPrix.Table, schema.GrandPrix.ID)

	tag, err := repository.db.Exec(context, q, id)
	if err != nil {
		return dberr.Wrap(err, "delete_race")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Grand Prix not found")
	}
	return nil
}
