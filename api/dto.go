/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: decimal values
  become plain floats, dates become ISO strings, and the engine's value
  types never leak their Go shape into clients.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/delivery"
	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProjectDTO represents a project in API responses.
type ProjectDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate string  `json:"start_date"`
	GoLive    *string `json:"go_live,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// CreateProjectRequest is the request to create or update a project.
type CreateProjectRequest struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate string  `json:"start_date"`
	GoLive    *string `json:"go_live,omitempty"`
}

// AddMemberRequest links a user to a project under a delivery role.
type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"` // infoAssurer | securityArchitect | soc
}

// AssignmentRequest marks a catalog activity required or not for a project.
type AssignmentRequest struct {
	ActivityName string `json:"activity_name"`
	Required     bool   `json:"required"`
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Grade string `json:"grade"`
}

// RebalanceRequest replaces a user's allocation split. Percentages are
// 0-100 per project; they need not sum to 100.
type RebalanceRequest struct {
	Allocations map[string]float64 `json:"allocations"`
}

// AbsenceRequest records an inclusive absence interval.
type AbsenceRequest struct {
	UserID string `json:"user_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// EffortHoursDTO mirrors the timeline reporting contract.
type EffortHoursDTO struct {
	RiskManager       float64 `json:"riskManager"`
	SecurityArchitect float64 `json:"securityArchitect"`
	SOC               float64 `json:"soc"`
}

// TimelineEventDTO is one dated timeline entry.
type TimelineEventDTO struct {
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	IsMilestone bool            `json:"is_milestone"`
	Phase       string          `json:"phase"`
	EffortHours *EffortHoursDTO `json:"effort_hours,omitempty"`
}

// TimelineDTO wraps the full event sequence and its milestone subset.
type TimelineDTO struct {
	ProjectID  string             `json:"project_id"`
	Events     []TimelineEventDTO `json:"events"`
	Milestones []TimelineEventDTO `json:"milestones"`
}

// SegmentDTO is one decomposition step: sequential activities or parallel
// swimlanes, never both.
type SegmentDTO struct {
	Kind       string               `json:"kind"`
	Activities []TimelineEventDTO   `json:"activities,omitempty"`
	Swimlanes  [][]TimelineEventDTO `json:"swimlanes,omitempty"`
}

// CriticalPathDTO is the decomposition plus both effort totals.
type CriticalPathDTO struct {
	ProjectID          string         `json:"project_id"`
	Segments           []SegmentDTO   `json:"segments"`
	TotalEffort        EffortHoursDTO `json:"total_effort"`
	CriticalPathEffort EffortHoursDTO `json:"critical_path_effort"`
	ElapsedDays        int            `json:"elapsed_days"`
}

// RiskDTO is the capacity-vs-deadline report.
type RiskDTO struct {
	ProjectID     string  `json:"project_id"`
	GoLive        *string `json:"go_live,omitempty"`
	RequiredDays  int     `json:"required_days"`
	AvailableDays int     `json:"available_days"`
	DaysAtRisk    int     `json:"days_at_risk"`
}

// UserChargeDTO is one person's share of a project cross-charge.
type UserChargeDTO struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Hours  float64 `json:"hours"`
	Cost   float64 `json:"cost"`
}

// CrossChargeDTO is the per-project cross-charging rollup.
type CrossChargeDTO struct {
	ProjectID    string          `json:"project_id"`
	ProjectTitle string          `json:"project_title"`
	TotalHours   float64         `json:"total_hours"`
	TotalCost    float64         `json:"total_cost"`
	Users        []UserChargeDTO `json:"users"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func toProjectDTO(p delivery.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:        p.ID,
		Title:     p.Title,
		StartDate: p.StartDate.ISO(),
	}
	if p.GoLive != nil {
		v := p.GoLive.ISO()
		dto.GoLive = &v
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toEffortDTO(e schedule.EffortHours) EffortHoursDTO {
	return EffortHoursDTO{
		RiskManager:       f(e.RiskManager),
		SecurityArchitect: f(e.SecurityArchitect),
		SOC:               f(e.SOC),
	}
}

func toEventDTO(e schedule.TimelineEvent) TimelineEventDTO {
	dto := TimelineEventDTO{
		Name:        e.Name,
		Date:        e.Date.ISO(),
		IsMilestone: e.Milestone,
		Phase:       string(e.Phase),
	}
	if e.Effort != nil {
		effort := toEffortDTO(*e.Effort)
		dto.EffortHours = &effort
	}
	return dto
}

func toEventDTOs(events []schedule.TimelineEvent) []TimelineEventDTO {
	dtos := make([]TimelineEventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	return dtos
}

func toCriticalPathDTO(projectID string, d schedule.Decomposition) CriticalPathDTO {
	segments := make([]SegmentDTO, len(d.Segments))
	for i, seg := range d.Segments {
		dto := SegmentDTO{Kind: string(seg.Kind)}
		switch seg.Kind {
		case schedule.SegmentSequential:
			dto.Activities = toEventDTOs(seg.Activities)
		case schedule.SegmentParallel:
			dto.Swimlanes = make([][]TimelineEventDTO, len(seg.Swimlanes))
			for j, lane := range seg.Swimlanes {
				dto.Swimlanes[j] = toEventDTOs(lane)
			}
		}
		segments[i] = dto
	}
	return CriticalPathDTO{
		ProjectID:          projectID,
		Segments:           segments,
		TotalEffort:        toEffortDTO(d.TotalEffort),
		CriticalPathEffort: toEffortDTO(d.CriticalEffort),
		ElapsedDays:        d.ElapsedDays,
	}
}

func toCrossChargeDTOs(results []schedule.ProjectCrossCharge) []CrossChargeDTO {
	dtos := make([]CrossChargeDTO, len(results))
	for i, r := range results {
		users := make([]UserChargeDTO, len(r.Users))
		for j, u := range r.Users {
			users[j] = UserChargeDTO{UserID: u.UserID, Name: u.Name, Hours: f(u.Hours), Cost: f(u.Cost)}
		}
		dtos[i] = CrossChargeDTO{
			ProjectID:    r.ProjectID,
			ProjectTitle: r.ProjectTitle,
			TotalHours:   f(r.TotalHours),
			TotalCost:    f(r.TotalCost),
			Users:        users,
		}
	}
	return dtos
}
