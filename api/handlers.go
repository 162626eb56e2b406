/*
handlers.go - HTTP API handlers for the delivery tracker

PURPOSE:
  Exposes the scheduling engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates every computation to the delivery
  service - no scheduling math lives here.

ENDPOINTS:
  Projects:
    GET    /api/projects                       List projects
    POST   /api/projects                       Create/update a project
    GET    /api/projects/{id}                  Project details
    POST   /api/projects/{id}/members          Add a member
    POST   /api/projects/{id}/assignments      Mark activity (not) required
    GET    /api/projects/{id}/timeline         Derived delivery timeline
    GET    /api/projects/{id}/critical-path    Segments + effort totals
    GET    /api/projects/{id}/risk             Days-at-risk report

  Users:
    GET    /api/users                          List users
    POST   /api/users                          Create/update a user
    POST   /api/users/{id}/rebalance           Record a new allocation split
    POST   /api/users/{id}/absences            Record an absence

  Reporting:
    GET    /api/cross-charging?from=&to=       Hours/cost rollup

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization; that belongs to the deployment's
  gateway layer, not this service.

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/delivery"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *delivery.Service
}

// NewHandler creates a new handler over the given service.
func NewHandler(service *delivery.Service) *Handler {
	return &Handler{Service: service}
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.Projects.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = toProjectDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ID == "" || req.Title == "" {
		writeErrorMsg(w, http.StatusBadRequest, "id and title are required")
		return
	}
	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "start_date must be an ISO date")
		return
	}
	project := delivery.Project{ID: req.ID, Title: req.Title, StartDate: start}
	if req.GoLive != nil {
		goLive, err := schedule.ParseDate(*req.GoLive)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "go_live must be an ISO date")
			return
		}
		project.GoLive = &goLive
	}
	if err := h.Service.Projects.SaveProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectDTO(project))
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Service.Projects.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(*project))
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	role := schedule.Role(req.Role)
	switch role {
	case schedule.RoleInfoAssurer, schedule.RoleSecurityArchitect, schedule.RoleSOC:
	default:
		writeErrorMsg(w, http.StatusBadRequest, "role must be one of infoAssurer, securityArchitect, soc")
		return
	}
	m := schedule.Membership{
		ProjectID: chi.URLParam(r, "id"),
		UserID:    req.UserID,
		Role:      role,
	}
	if err := h.Service.Projects.AddMember(r.Context(), m); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveAssignment(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ActivityName == "" {
		writeErrorMsg(w, http.StatusBadRequest, "activity_name is required")
		return
	}
	a := schedule.ActivityAssignment{ActivityName: req.ActivityName, Required: req.Required}
	if err := h.Service.Projects.SaveActivityAssignment(r.Context(), chi.URLParam(r, "id"), a); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	events, err := h.Service.Timeline(r.Context(), projectID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TimelineDTO{
		ProjectID:  projectID,
		Events:     toEventDTOs(events),
		Milestones: toEventDTOs(schedule.Milestones(events)),
	})
}

func (h *Handler) GetCriticalPath(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	d, err := h.Service.CriticalPath(r.Context(), projectID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCriticalPathDTO(projectID, d))
}

func (h *Handler) GetRisk(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.DaysAtRisk(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	dto := RiskDTO{
		ProjectID:     report.ProjectID,
		RequiredDays:  report.RequiredDays,
		AvailableDays: report.AvailableDays,
		DaysAtRisk:    report.DaysAtRisk,
	}
	if report.GoLive != nil {
		v := report.GoLive.ISO()
		dto.GoLive = &v
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) GetCrossCharging(w http.ResponseWriter, r *http.Request) {
	from, err := schedule.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "from must be an ISO date")
		return
	}
	to, err := schedule.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "to must be an ISO date")
		return
	}
	results, err := h.Service.CrossCharging(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toCrossChargeDTOs(results))
}

// =============================================================================
// USER HANDLERS
// =============================================================================

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Users.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = UserDTO{ID: u.ID, Name: u.Name, Role: u.Role, Grade: u.Grade}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeErrorMsg(w, http.StatusBadRequest, "id and name are required")
		return
	}
	u := delivery.User{ID: req.ID, Name: req.Name, Role: req.Role, Grade: req.Grade}
	if err := h.Service.Users.SaveUser(r.Context(), u); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) Rebalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if _, err := h.Service.Users.GetUser(r.Context(), userID); err != nil {
		writeStoreError(w, err)
		return
	}
	var req RebalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Allocations) == 0 {
		writeErrorMsg(w, http.StatusBadRequest, "allocations must not be empty")
		return
	}
	split := make(map[string]decimal.Decimal, len(req.Allocations))
	for projectID, pct := range req.Allocations {
		if pct < 0 {
			writeErrorMsg(w, http.StatusBadRequest, "percentages must not be negative")
			return
		}
		split[projectID] = decimal.NewFromFloat(pct)
	}
	if err := h.Service.Rebalance(r.Context(), userID, split); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	var req AbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	start, err := schedule.ParseDate(req.Start)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "start must be an ISO date")
		return
	}
	end, err := schedule.ParseDate(req.End)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "end must be an ISO date")
		return
	}
	if end.Before(start) {
		writeErrorMsg(w, http.StatusBadRequest, "end must not precede start")
		return
	}
	a := delivery.Absence{UserID: userID, Start: start, End: end}
	if err := h.Service.Absences.SaveAbsence(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeStoreError maps store sentinels to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, delivery.ErrProjectNotFound), errors.Is(err, delivery.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
