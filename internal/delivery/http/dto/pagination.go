package dto

import "studentshub/internal/domain"

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPagination(p domain.Page, total int) Pagination {
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, p.Limit),
	}
}

func NewList[S, T any](items []S, p domain.Page, total int, conv func(S) T) ListResponse[T] {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return ListResponse[T]{Items: out, Pagination: NewPagination(p, total)}
}

func Map[S, T any](items []S, conv func(S) T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}
