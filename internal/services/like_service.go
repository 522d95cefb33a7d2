package services

import (
	"context"

	"feed-backend/internal/store"
)

type LikeService struct {
	likes store.LikeStore
	posts store.PostStore
}

func NewLikeService(likes store.LikeStore, posts store.PostStore) *LikeService {
	return &LikeService{likes: likes, posts: posts}
}

// Toggle flips the caller's like on a post and reports the resulting state.
func (s *LikeService) Toggle(ctx context.Context, postID, userID int) (bool, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.likes.HasLiked(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.likes.DeleteLike(ctx, postID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.likes.CreateLike(ctx, postID, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *LikeService) Count(ctx context.Context, postID int) (int, error) {
	return s.likes.CountLikes(ctx, postID)
}
