package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterTopicRoutes mounts the topic like toggle under the topics router.
func (handler *Handler) RegisterTopicRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{topicID}/like", handler.toggleTopicLike)
	})
}

// RegisterCommentRoutes mounts the comment like toggle under the comments router.
func (handler *Handler) RegisterCommentRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{commentID}/like", handler.toggleCommentLike)
	})
}

func (handler *Handler) toggleTopicLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	topicID, err := requestutil.ID(request, "topicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleTopicLike(request.Context(), topicID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) toggleCommentLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleCommentLike(request.Context(), commentID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
