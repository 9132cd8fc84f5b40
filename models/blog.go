package models

import "time"

type Blog struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Image     *string    `json:"image,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
