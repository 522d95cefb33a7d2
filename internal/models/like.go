package models

// Like rows only exist while both the user and the post do; they carry no
// mutable state of their own.
type Like struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	PostID int `json:"post_id"`
}

type LikeStatus struct {
	Liked bool `json:"liked"`
}

type LikeCount struct {
	Count int `json:"count"`
}
