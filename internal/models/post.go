package models

import "time"

// Post is returned with the author's username already resolved, so callers
// never need a second lookup to render it.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	UserID    int       `json:"user_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdatePostRequest struct {
	Title string `json:"title"`
}
