package services

import (
	"context"
	"mime/multipart"

	"feed-backend/internal/models"
	"feed-backend/internal/storage"
	"feed-backend/internal/store"
	"feed-backend/internal/utils"
)

type PostService struct {
	posts store.PostStore
	files *storage.FileStore
}

func NewPostService(posts store.PostStore, files *storage.FileStore) *PostService {
	return &PostService{posts: posts, files: files}
}

// Create validates the upload before anything is written: a rejected
// extension leaves neither a file nor a row behind.
func (s *PostService) Create(ctx context.Context, title string, file *multipart.FileHeader, ownerID int) (*models.Post, error) {
	fileURL, err := s.files.Save(file)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.CreatePost(ctx, title, fileURL, ownerID)
	if err != nil {
		// Don't leave an orphaned upload if the insert fails
		if rmErr := s.files.Remove(fileURL); rmErr != nil {
			utils.LogError(rmErr, "PostService.Create cleanup")
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	return s.posts.ListPosts(ctx, offset, limit)
}

func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	return s.posts.GetPost(ctx, id)
}

func (s *PostService) UpdateTitle(ctx context.Context, id int, title string, actingUserID int) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(actingUserID, post.UserID) {
		return nil, ErrForbidden
	}
	return s.posts.UpdatePostTitle(ctx, id, title)
}

// Delete removes a post together with everything that depends on it: its
// comments, its likes and its backing file. The rows go away in one
// transaction; file removal is best-effort and never blocks the deletion.
func (s *PostService) Delete(ctx context.Context, id int, actingUserID int) error {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(actingUserID, post.UserID) {
		return ErrForbidden
	}

	if err := s.files.Remove(post.FileURL); err != nil {
		utils.LogError(err, "PostService.Delete file removal")
	}

	return s.posts.DeletePostTree(ctx, id)
}
