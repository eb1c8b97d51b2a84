package grandprix

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/platform/validate"
	"github.com/paddockhq/paddock/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRaces)
	router.Get("/next", handler.nextRace)
	router.Get("/upcoming", handler.upcomingRaces)
	router.Get("/{id}", handler.getRace)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createRace)
		r.Put("/{id}", handler.updateRace)
		r.Delete("/{id}", handler.deleteRace)
	})
}

func (handler *Handler) listRaces(writer http.ResponseWriter, request *http.Request) {
	year := convert.ToIntD(request.URL.Query().Get("year"), 0)

	races, err := handler.service.ListRaces(request.Context(), year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, races)
}

func (handler *Handler) nextRace(writer http.ResponseWriter, request *http.Request) {
	race, err := handler.service.NextRace(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, race)
}

func (handler *Handler) upcomingRaces(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), 5)

	races, err := handler.service.UpcomingRaces(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, races)
}

func (handler *Handler) getRace(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	race, err := handler.service.GetRace(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, race)
}

type raceRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Circuit     string `json:"circuit"`
	RaceDate    string `json:"race_date"` // YYYY-MM-DD
	Year        int    `json:"year"`
	Round       string `json:"round"`
	IsCompleted bool   `json:"is_completed"`
}

func (input raceRequest) validate() (RaceInput, error) {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, NameMaxLength).
		Required("country", input.Country).MaxLen("country", input.Country, CountryMaxLength).
		Required("circuit", input.Circuit).MaxLen("circuit", input.Circuit, CircuitMaxLength).
		Required("race_date", input.RaceDate).
		Required("round", input.Round).MaxLen("round", input.Round, RoundMaxLength).
		Range("year", input.Year, 1950, 2100)

	raceDate, err := time.Parse("2006-01-02", input.RaceDate)
	if err != nil {
		validator.Custom("race_date", true, "must be a date in YYYY-MM-DD format")
	}

	if err := validator.Err(); err != nil {
		return RaceInput{}, err
	}

	return RaceInput{
		Name:        input.Name,
		Country:     input.Country,
		Circuit:     input.Circuit,
		RaceDate:    raceDate,
		Year:        input.Year,
		Round:       input.Round,
		IsCompleted: input.IsCompleted,
	}, nil
}

func (handler *Handler) createRace(writer http.ResponseWriter, request *http.Request) {
	var input raceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	raceInput, err := input.validate()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	race, err := handler.service.CreateRace(request.Context(), raceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, race)
}

func (handler *Handler) updateRace(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input raceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	raceInput, err := input.validate()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	race, err := handler.service.UpdateRace(request.Context(), id, raceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, race)
}

func (handler *Handler) deleteRace(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRace(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
