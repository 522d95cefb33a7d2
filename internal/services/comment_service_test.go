package services

import (
	"context"
	"errors"
	"testing"

	"feed-backend/internal/store"
)

func newCommentFixture(t *testing.T) (*CommentService, *memStore) {
	t.Helper()
	ms := newMemStore()
	return NewCommentService(ms, ms), ms
}

func TestCreateCommentRequiresExistingPost(t *testing.T) {
	svc, ms := newCommentFixture(t)
	ctx := context.Background()

	user, _ := ms.CreateUser(ctx, "bob", "x")
	if _, err := svc.Create(ctx, 777, "hello", user.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing parent, got %v", err)
	}

	post, _ := ms.CreatePost(ctx, "a post", "/uploads/a.png", user.ID)
	comment, err := svc.Create(ctx, post.ID, "hello", user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.PostID != post.ID || comment.Text != "hello" {
		t.Errorf("unexpected comment: %+v", comment)
	}
}

func TestListCommentsOldestFirst(t *testing.T) {
	svc, ms := newCommentFixture(t)
	ctx := context.Background()

	user, _ := ms.CreateUser(ctx, "bob", "x")
	post, _ := ms.CreatePost(ctx, "a post", "/uploads/a.png", user.ID)

	first, _ := svc.Create(ctx, post.ID, "first", user.ID)
	second, _ := svc.Create(ctx, post.ID, "second", user.ID)
	third, _ := svc.Create(ctx, post.ID, "third", user.ID)

	comments, err := svc.ListForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	want := []int{first.ID, second.ID, third.ID}
	if len(comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(comments))
	}
	for i, id := range want {
		if comments[i].ID != id {
			t.Errorf("position %d: expected comment %d, got %d", i, id, comments[i].ID)
		}
	}
}

func TestUpdateCommentOwnership(t *testing.T) {
	svc, ms := newCommentFixture(t)
	ctx := context.Background()

	alice, _ := ms.CreateUser(ctx, "alice", "x")
	bob, _ := ms.CreateUser(ctx, "bob", "x")
	post, _ := ms.CreatePost(ctx, "a post", "/uploads/a.png", alice.ID)
	comment, _ := svc.Create(ctx, post.ID, "original", bob.ID)

	if _, err := svc.UpdateText(ctx, 9999, "new", bob.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing comment: expected ErrNotFound, got %v", err)
	}

	// Owning the post does not grant rights over someone else's comment
	if _, err := svc.UpdateText(ctx, comment.ID, "hijacked", alice.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	got, _ := ms.GetComment(ctx, comment.ID)
	if got.Text != "original" {
		t.Errorf("text changed after forbidden update: %q", got.Text)
	}

	updated, err := svc.UpdateText(ctx, comment.ID, "edited", bob.ID)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Text != "edited" {
		t.Errorf("expected edited text, got %q", updated.Text)
	}
}

func TestDeleteCommentOwnership(t *testing.T) {
	svc, ms := newCommentFixture(t)
	ctx := context.Background()

	alice, _ := ms.CreateUser(ctx, "alice", "x")
	bob, _ := ms.CreateUser(ctx, "bob", "x")
	post, _ := ms.CreatePost(ctx, "a post", "/uploads/a.png", alice.ID)
	comment, _ := svc.Create(ctx, post.ID, "mine", bob.ID)

	if err := svc.Delete(ctx, comment.ID, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := ms.GetComment(ctx, comment.ID); err != nil {
		t.Fatalf("comment gone after forbidden delete: %v", err)
	}

	if err := svc.Delete(ctx, comment.ID, bob.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := ms.GetComment(ctx, comment.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("comment should be gone: %v", err)
	}

	if err := svc.Delete(ctx, comment.ID, bob.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
