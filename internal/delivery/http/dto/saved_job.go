package dto

import (
	"time"

	"studentshub/internal/usecase"

	"github.com/google/uuid"
)

type SavedJobResponse struct {
	ID              uuid.UUID   `json:"id"`
	JobID           uuid.UUID   `json:"job_id"`
	Notes           string      `json:"notes"`
	SavedAt         time.Time   `json:"saved_at"`
	DaysLeft        *int        `json:"days_left"`
	IsUrgent        bool        `json:"is_urgent"`
	HasApplied      bool        `json:"has_applied"`
	MatchPercentage int         `json:"match_percentage"`
	Job             JobResponse `json:"job"`
}

type SavedJobCheckResponse struct {
	IsSaved  bool              `json:"is_saved"`
	SavedJob *SavedJobResponse `json:"saved_job"`
}

type BulkUnsaveResponse struct {
	DeletedCount int `json:"deleted_count"`
}

func NewSavedJobResponse(v usecase.SavedJobView) SavedJobResponse {
	return SavedJobResponse{
		ID:              v.ID,
		JobID:           v.JobID,
		Notes:           v.Notes,
		SavedAt:         v.SavedAt,
		DaysLeft:        v.DaysLeft,
		IsUrgent:        v.IsUrgent,
		HasApplied:      v.HasApplied,
		MatchPercentage: v.MatchPercentage,
		Job:             NewJobResponse(v.Job),
	}
}
