// Copyright (c) 2026 Paddock. All rights reserved.

/*
Package admin provides the HTTP delivery layer for the operations panel.

# Security

The dashboard is readable by staff (moderators and admins). Everything that
mutates members or touches backups requires the admin role.
*/
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paddockhq/paddock/internal/platform/middleware"
	requestutil "github.com/paddockhq/paddock/internal/platform/request"
	"github.com/paddockhq/paddock/internal/platform/respond"
	"github.com/paddockhq/paddock/internal/platform/sec"
	"github.com/paddockhq/paddock/internal/platform/validate"
	"github.com/paddockhq/paddock/pkg/pagination"
)

// Handler implements the admin panel HTTP endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] with the admin panel endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Staff-readable dashboard
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff)
		r.Get("/stats", handler.getStats)
	})

	// Admin-only management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))

		r.Get("/users", handler.listUsers)
		r.Patch("/users/{id}/role", handler.updateUserRole)
		r.Patch("/users/{id}/status", handler.updateUserStatus)

		r.Get("/backups", handler.listBackups)
		r.Post("/backups", handler.createBackup)
		r.Get("/backups/{id}/download", handler.downloadBackup)
		r.Post("/backups/{id}/restore", handler.restoreBackup)
		r.Delete("/backups/{id}", handler.deleteBackup)
	})

	return router
}

// # Dashboard Endpoints

/*
GET /api/v1/admin/stats.

Response:
  - 200: DashboardStats: Counters and recent activity
  - 403: ErrForbidden: Staff role required
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.adminService.GetStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

// # Member Management Endpoints

/*
GET /api/v1/admin/users.

Description: Pages through members, optionally filtered by a search term
matching username or email.

Response:
  - 200: []UserRow: Member page with pagination metadata
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.adminService.ListUsers(request.Context(), search,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

/*
PATCH /api/v1/admin/users/{id}/role.

Response:
  - 204: No Content: Role updated
  - 400: Validation: Unknown role value
  - 403: ErrForbidden: Self-targeting refused
  - 404: ErrNotFound: No such member
*/
func (handler *Handler) updateUserRole(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	actor := requestutil.Identity(request)
	if err := handler.adminService.UpdateUserRole(request.Context(), actor, id, input.Role); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

/*
PATCH /api/v1/admin/users/{id}/status.

Response:
  - 204: No Content: Status updated
  - 400: Validation: Unknown status value
  - 403: ErrForbidden: Self-targeting refused
  - 404: ErrNotFound: No such member
*/
func (handler *Handler) updateUserStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	actor := requestutil.Identity(request)
	if err := handler.adminService.UpdateUserStatus(request.Context(), actor, id, input.Status); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Backup Endpoints

func (handler *Handler) listBackups(writer http.ResponseWriter, request *http.Request) {
	backups, err := handler.adminService.ListBackups(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, backups)
}

type createBackupRequest struct {
	Notes *string `json:"notes"`
}

/*
POST /api/v1/admin/backups.

Description: Runs pg_dump synchronously and records the artifact. Dumps of a
forum-sized database complete within the request timeout.

Response:
  - 201: Backup: Recorded backup row
  - 500: ErrInternal: pg_dump failure
*/
func (handler *Handler) createBackup(writer http.ResponseWriter, request *http.Request) {
	var input createBackupRequest
	// The body is optional.
	_ = requestutil.DecodeJSON(request, &input)

	actor := requestutil.Identity(request)
	backup, err := handler.adminService.CreateBackup(request.Context(), actor, input.Notes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, backup)
}

/*
GET /api/v1/admin/backups/{id}/download.

Description: Streams the dump file as an attachment.

Response:
  - 200: application/sql attachment
  - 404: ErrNotFound: Row or file missing
*/
func (handler *Handler) downloadBackup(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	backup, err := handler.adminService.BackupFile(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "application/sql")
	writer.Header().Set("Content-Disposition", `attachment; filename="`+backup.Filename+`"`)
	http.ServeFile(writer, request, backup.Filepath)
}

/*
POST /api/v1/admin/backups/{id}/restore.

Description: Destructive. Replays the dump over the live database.

Response:
  - 204: No Content: Restore completed
  - 404: ErrNotFound: Row or file missing
*/
func (handler *Handler) restoreBackup(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.RestoreBackup(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteBackup(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.DeleteBackup(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
