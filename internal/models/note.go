package models

import "time"

type Note struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	Label     string    `json:"label"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Label   string `json:"label" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateNoteRequest struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// NotePage is the pagination envelope returned by the list endpoint.
type NotePage struct {
	Data  []*Note `json:"data"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
