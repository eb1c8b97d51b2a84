package topic

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
	"github.com/paddockhq/paddock/internal/platform/validate"
	"github.com/paddockhq/paddock/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTopics)
	router.Get("/{id}", handler.getTopic)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createTopic)
		r.Put("/{id}", handler.updateTopic)
		r.Delete("/{id}", handler.deleteTopic)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff)
		r.Patch("/{id}/pin", handler.setPinned)
		r.Patch("/{id}/lock", handler.setLocked)
	})
}

func (handler *Handler) listTopics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Tag:   queryParams.Get("tag"),
		Query: queryParams.Get("q"),
		Sort:  queryParams.Get("sort"),
	}
	if categoryID, err := strconv.ParseInt(queryParams.Get("category_id"), 10, 64); err == nil && categoryID > 0 {
		filter.CategoryID = &categoryID
	}

	topics, total, err := handler.service.ListTopics(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, topics, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTopic(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.GetTopic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}

type createTopicRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	CategoryID *int64   `json:"category_id"`
}

func (handler *Handler) createTopic(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTopicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("title", input.Title).
		MaxLen("title", input.Title, TitleMaxLength).
		Required("content", input.Content).
		MinLen("content", input.Content, ContentMinLength)
	if input.CategoryID != nil {
		validator.PositiveID("category_id", *input.CategoryID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.CreateTopic(request.Context(), actor, CreateInput{
		Title:      input.Title,
		Content:    input.Content,
		Tags:       input.Tags,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, t)
}

type updateTopicRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Tags       []string `json:"tags"`
	CategoryID *int64   `json:"category_id"`
}

func (handler *Handler) updateTopic(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTopicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required("title", *input.Title).MaxLen("title", *input.Title, TitleMaxLength)
	}
	if input.Content != nil {
		validator.MinLen("content", *input.Content, ContentMinLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.service.UpdateTopic(request.Context(), actor, id, UpdateInput{
		Title:      input.Title,
		Content:    input.Content,
		Tags:       input.Tags,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}

func (handler *Handler) deleteTopic(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTopic(request.Context(), actor, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type flagRequest struct {
	Value bool `json:"value"`
}

func (handler *Handler) setPinned(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input flagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	t, err := handler.service.SetPinned(request.Context(), id, input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}

func (handler *Handler) setLocked(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input flagRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	t, err := handler.service.SetLocked(request.Context(), id, input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, t)
}
