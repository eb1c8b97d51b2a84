package grandprix

import (
	"context"
	"log/slog"
	"time"
)

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) ListRaces(context context.Context, year int) ([]*GrandPrix, error) {
	return service.repo.ListRaces(context, year)
}

func (service *Service) GetRace(context context.Context, id int64) (*GrandPrix, error) {
	return service.repo.GetRaceByID(context, id)
}

// NextRace serves the closest future race, preferring the cache. Cache
// failures fall through to the database.
func (service *Service) NextRace(context context.Context) (*GrandPrix, error) {
	if race, err := service.cache.GetNext(context); err == nil {
		return race, nil
	}

	race, err := service.repo.NextRace(context, today())
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetNext(context, race); err != nil {
		service.logger.Warn("next_race_cache_set_failed", slog.String("error", err.Error()))
	}

	return race, nil
}

func (service *Service) UpcomingRaces(context context.Context, limit int) ([]*GrandPrix, error) {
	if limit <= 0 || limit > 25 {
		limit = 5
	}
	return service.repo.UpcomingRaces(context, today(), limit)
}

type RaceInput struct {
	Name        string
	Country     string
	Circuit     string
	RaceDate    time.Time
	Year        int
	Round       string
	IsCompleted bool
}

func (service *Service) CreateRace(context context.Context, input RaceInput) (*GrandPrix, error) {
	race := &GrandPrix{
		Name:        input.Name,
		Country:     input.Country,
		Circuit:     input.Circuit,
		RaceDate:    input.RaceDate,
		Year:        input.Year,
		Round:       input.Round,
		IsCompleted: input.IsCompleted,
	}

	if err := service.repo.CreateRace(context, race); err != nil {
		return nil, err
	}

	service.invalidateCache(context)
	service.logger.Info("race_created", slog.Int64("race_id", race.ID), slog.String("name", race.Name))
	return race, nil
}

func (service *Service) UpdateRace(context context.Context, id int64, input RaceInput) (*GrandPrix, error) {
	race := &GrandPrix{
		ID:          id,
		Name:        input.Name,
		Country:     input.Country,
		Circuit:     input.Circuit,
		RaceDate:    input.RaceDate,
		Year:        input.Year,
		Round:       input.Round,
		IsCompleted: input.IsCompleted,
	}

	if err := service.repo.UpdateRace(context, race); err != nil {
		return nil, err
	}

	service.invalidateCache(context)
	return race, nil
}

func (service *Service) DeleteRace(context context.Context, id int64) error {
	if err := service.repo.DeleteRace(context, id); err != nil {
		return err
	}

	service.invalidateCache(context)
	service.logger.Info("race_deleted", slog.Int64("race_id", id))
	return nil
}

func (service *Service) invalidateCache(context context.Context) {
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("next_race_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

// today truncates to the calendar day so a race later the same day still
// counts as upcoming.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
