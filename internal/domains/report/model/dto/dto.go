package dto

import (
	"time"

	"campusroom/internal/domains/report/model"
	"campusroom/internal/domains/report/triage"
	"campusroom/shared"
	gDto "campusroom/shared/dto"
	gModel "campusroom/shared/model"
	"campusroom/shared/timezone"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	RoomCode    string `json:"room_code"   validate:"required,max=50"`
	Category    string `json:"category"    validate:"required,oneof=projector computer lighting air_conditioning other"`
	Description string `json:"description" validate:"required,min=3,max=1000"`
}

func (c *CreateReportRequest) ToModel(reporterID, role, roomCode string, result triage.Result, bucket func(time.Time) time.Time) model.Report {
	now := timezone.Now()

	return model.Report{
		ID:           uuid.NewString(),
		ReporterID:   reporterID,
		Role:         role,
		RoomCode:     roomCode,
		Category:     c.Category,
		Description:  shared.NormalizeSpaces(c.Description),
		SeverityRank: result.SeverityRank,
		AIConfidence: result.Confidence,
		AIRationale:  result.Rationale,
		TriageSource: result.Source,
		Status:       model.StatusOpen,
		TimeBucket:   bucket(now),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  reporterID,
			ModifiedBy: reporterID,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress done"`
}

type UpdateStatusResponse struct {
	Status  string `json:"status"`
	Updated int64  `json:"updated"`
}

type ReportResponse struct {
	ID           string  `json:"id"`
	ReporterID   string  `json:"reporter_id"`
	Role         string  `json:"role"`
	RoomCode     string  `json:"room_code"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	SeverityRank int     `json:"severity_rank"`
	AIConfidence float64 `json:"ai_confidence"`
	AIRationale  string  `json:"ai_rationale"`
	TriageSource string  `json:"triage_source"`
	Status       string  `json:"status"`
	ReportCount  int     `json:"report_count,omitempty"`
	gDto.Metadata
}

func (r *ReportResponse) FromModel(model model.Report) {
	r.ID = model.ID
	r.ReporterID = model.ReporterID
	r.Role = model.Role
	r.RoomCode = model.RoomCode
	r.Category = model.Category
	r.Description = model.Description
	r.SeverityRank = model.SeverityRank
	r.AIConfidence = model.AIConfidence
	r.AIRationale = model.AIRationale
	r.TriageSource = model.TriageSource
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReportsResponse struct {
	Reports   []ReportResponse `json:"reports"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReportsResponse) FromModels(models []model.Report, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reports = make([]ReportResponse, len(models))
	for i, mod := range models {
		r.Reports[i].FromModel(mod)
	}
}

type GroupedReportsResponse struct {
	Groups []ReportResponse `json:"groups"`
}

func (r *GroupedReportsResponse) FromModels(models []model.GroupedReport) {
	r.Groups = make([]ReportResponse, len(models))
	for i, mod := range models {
		r.Groups[i].FromModel(mod.Report)
		r.Groups[i].ReportCount = mod.ReportCount
	}
}

// Event is the payload published when a report is filed.
type Event struct {
	Type         string    `json:"type"`
	ReportID     string    `json:"report_id"`
	RoomCode     string    `json:"room_code"`
	Category     string    `json:"category"`
	SeverityRank int       `json:"severity_rank"`
	TriageSource string    `json:"triage_source"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const EventCreated = "report.created"

func NewEvent(model model.Report) Event {
	return Event{
		Type:         EventCreated,
		ReportID:     model.ID,
		RoomCode:     model.RoomCode,
		Category:     model.Category,
		SeverityRank: model.SeverityRank,
		TriageSource: model.TriageSource,
		OccurredAt:   model.CreatedAt,
	}
}
