package grandprix

import (
	"context"
	"time"
)

type Repository interface {
	ListRaces(context context.Context, year int) ([]*GrandPrix, error)
	GetRaceByID(context context.Context, id int64) (*GrandPrix, error)
	NextRace(context context.Context, after time.Time) (*GrandPrix, error)
	UpcomingRaces(context context.Context, after time.Time, limit int) ([]*GrandPrix, error)
	CreateRace(context context.Context, race *GrandPrix) error
	UpdateRace(context context.Context, race *GrandPrix) error
	DeleteRace(context context.Context, id int64) error
}

// Cache is the volatile layer in front of the next-race lookup.
type Cache interface {
	GetNext(context context.Context) (*GrandPrix, error)
	SetNext(context context.Context, race *GrandPrix) error
	Invalidate(context context.Context) error
}
