// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package account provides the HTTP delivery layer for profile management.

# Security

The /me endpoints require an active authentication session provided by the
RequireAuth middleware. Public profile discovery is open.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
	"github.com/paddockhq/paddock/internal/platform/validate"
	"github.com/paddockhq/paddock/internal/users/auth"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self Management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/me", handler.updateMe)
		r.Get("/me/stats", handler.myStats)
	})

	// Public Profile discovery
	router.Get("/{id}", handler.getPublicProfile)
	router.Get("/{id}/stats", handler.getUserStats)

	return router
}

// # Self Management Endpoints

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	FavoriteTeam   *string `json:"favorite_team"`
	FavoriteDriver *string `json:"favorite_driver"`
	AvatarURL      *string `json:"avatar_url"`
}

/*
PUT /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.
Absent fields are left untouched.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.FavoriteTeam != nil {
		validator.MaxLen(auth.FieldFavoriteTeam, *input.FavoriteTeam, auth.ProfileFieldMaxLength)
	}
	if input.FavoriteDriver != nil {
		validator.MaxLen(auth.FieldFavoriteDriver, *input.FavoriteDriver, auth.ProfileFieldMaxLength)
	}
	if input.AvatarURL != nil {
		validator.MaxLen(auth.FieldAvatarURL, *input.AvatarURL, auth.AvatarURLMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FavoriteTeam:   input.FavoriteTeam,
		FavoriteDriver: input.FavoriteDriver,
		AvatarURL:      input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users/me/stats.

Description: Returns the authenticated user's contribution counters.

Response:
  - 200: Stats: Topic, comment and like counters
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) myStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.accountService.GetStats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// # Discovery Endpoints

/*
GET /api/v1/users/{id}.

Description: Returns the sanitized public profile of any member.

Response:
  - 200: PublicProfile: Sanitized profile with stats
  - 404: ErrNotFound: No account with this ID
*/
func (handler *Handler) getPublicProfile(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetPublicProfile(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/users/{id}/stats.

Description: Returns the contribution counters of any member.

Response:
  - 200: Stats: Topic, comment and like counters
  - 404: ErrNotFound: No account with this ID
*/
func (handler *Handler) getUserStats(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.accountService.GetStats(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
