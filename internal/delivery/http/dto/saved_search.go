package dto

import (
	"time"

	"studentshub/internal/domain/savedsearch"

	"github.com/google/uuid"
)

type SavedSearchResponse struct {
	ID           uuid.UUID           `json:"id"`
	SearchQuery  string              `json:"search_query"`
	Filters      savedsearch.Filters `json:"filters"`
	SearchCount  int                 `json:"search_count"`
	LastSearched time.Time           `json:"last_searched"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewSavedSearchResponse(s savedsearch.SavedSearch) SavedSearchResponse {
	return SavedSearchResponse{
		ID:           s.ID,
		SearchQuery:  s.Query,
		Filters:      s.Filters,
		SearchCount:  s.SearchCount,
		LastSearched: s.LastSearched,
		CreatedAt:    s.CreatedAt,
	}
}
