package services

import (
	"context"

	"feed-backend/internal/models"
	"feed-backend/internal/store"
)

type CommentService struct {
	comments store.CommentStore
	posts    store.PostStore
}

func NewCommentService(comments store.CommentStore, posts store.PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create requires the parent post to exist; a comment is never accepted for
// a post id that does not resolve.
func (s *CommentService) Create(ctx context.Context, postID int, text string, ownerID int) (*models.Comment, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.CreateComment(ctx, postID, text, ownerID)
}

func (s *CommentService) ListForPost(ctx context.Context, postID int) ([]models.Comment, error) {
	return s.comments.ListCommentsForPost(ctx, postID)
}

func (s *CommentService) UpdateText(ctx context.Context, id int, text string, actingUserID int) (*models.Comment, error) {
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(actingUserID, comment.UserID) {
		return nil, ErrForbidden
	}
	return s.comments.UpdateCommentText(ctx, id, text)
}

func (s *CommentService) Delete(ctx context.Context, id int, actingUserID int) error {
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(actingUserID, comment.UserID) {
		return ErrForbidden
	}
	return s.comments.DeleteComment(ctx, id)
}
