package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
	"github.com/paddockhq/paddock/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTopicRoutes mounts the routes nested under a topic.
func (handler *Handler) RegisterTopicRoutes(router chi.Router) {
	router.Get("/{topicID}/comments", handler.listComments)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{topicID}/comments", handler.createComment)
	})
}

// RegisterRoutes mounts the routes addressing a comment directly.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/{id}", handler.updateComment)
		r.Delete("/{id}", handler.deleteComment)
	})
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	topicID, err := requestutil.ID(request, "topicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListComments(request.Context(), topicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id"`
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	topicID, err := requestutil.ID(request, "topicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	if input.ParentID != nil {
		validator.PositiveID("parent_id", *input.ParentID)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.CreateComment(request.Context(), actor, CreateInput{
		TopicID:  topicID,
		Content:  input.Content,
		ParentID: input.ParentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
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

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("content", input.Content).MaxLen("content", input.Content, ContentMaxLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.UpdateComment(request.Context(), actor, id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteComment(request.Context(), actor, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
