package store

import (
	"context"
	"errors"

	"feed-backend/internal/models"
)

var (
	// ErrNotFound is returned when an id does not resolve to a row.
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when a username is already taken.
	ErrUserExists = errors.New("username already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type PostStore interface {
	CreatePost(ctx context.Context, title, fileURL string, ownerID int) (*models.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, id int) (*models.Post, error)
	UpdatePostTitle(ctx context.Context, id int, title string) (*models.Post, error)
	// DeletePostTree removes the post's comments, likes and the post row
	// itself in a single transaction.
	DeletePostTree(ctx context.Context, id int) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, postID int, text string, ownerID int) (*models.Comment, error)
	ListCommentsForPost(ctx context.Context, postID int) ([]models.Comment, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	UpdateCommentText(ctx context.Context, id int, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

type LikeStore interface {
	CreateLike(ctx context.Context, postID, userID int) error
	DeleteLike(ctx context.Context, postID, userID int) error
	HasLiked(ctx context.Context, postID, userID int) (bool, error)
	CountLikes(ctx context.Context, postID int) (int, error)
}

// Store is the full persistence surface backed by one database.
type Store interface {
	UserStore
	PostStore
	CommentStore
	LikeStore
}
