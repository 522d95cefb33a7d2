package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"feed-backend/internal/models"
	"feed-backend/internal/store"
)

// memStore is an in-memory store.Store used to exercise the service layer
// without a database. Each write advances a fake clock so creation times
// are distinct and ordering is observable.
type memStore struct {
	mu       sync.Mutex
	users    map[int]*models.User
	posts    map[int]*models.Post
	comments map[int]*models.Comment
	likes    map[int]*models.Like
	nextID   int
	now      time.Time
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int]*models.User),
		posts:    make(map[int]*models.Post),
		comments: make(map[int]*models.Comment),
		likes:    make(map[int]*models.Like),
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return nil, store.ErrUserExists
		}
	}
	u := &models.User{ID: m.id(), Username: username, PasswordHash: passwordHash, CreatedAt: m.tick()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (m *memStore) CreatePost(ctx context.Context, title, fileURL string, ownerID int) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &models.Post{ID: m.id(), Title: title, FileURL: fileURL, UserID: ownerID, CreatedAt: m.tick()}
	if u, ok := m.users[ownerID]; ok {
		p.Author = u.Username
	}
	m.posts[p.ID] = p
	copy := *p
	return &copy, nil
}

func (m *memStore) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []models.Post
	for _, p := range m.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	if offset >= len(posts) {
		return nil, nil
	}
	posts = posts[offset:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *memStore) GetPost(ctx context.Context, id int) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (m *memStore) UpdatePostTitle(ctx context.Context, id int, title string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Title = title
	copy := *p
	return &copy, nil
}

func (m *memStore) DeletePostTree(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	for lid, l := range m.likes {
		if l.PostID == id {
			delete(m.likes, lid)
		}
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) CreateComment(ctx context.Context, postID int, text string, ownerID int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &models.Comment{ID: m.id(), Text: text, UserID: ownerID, PostID: postID, CreatedAt: m.tick()}
	if u, ok := m.users[ownerID]; ok {
		c.Author = u.Username
	}
	m.comments[c.ID] = c
	copy := *c
	return &copy, nil
}

func (m *memStore) ListCommentsForPost(ctx context.Context, postID int) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var comments []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *memStore) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (m *memStore) UpdateCommentText(ctx context.Context, id int, text string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Text = text
	copy := *c
	return &copy, nil
}

func (m *memStore) DeleteComment(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *memStore) CreateLike(ctx context.Context, postID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.PostID == postID && l.UserID == userID {
			return nil
		}
	}
	l := &models.Like{ID: m.id(), UserID: userID, PostID: postID}
	m.likes[l.ID] = l
	return nil
}

func (m *memStore) DeleteLike(ctx context.Context, postID, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for lid, l := range m.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(m.likes, lid)
		}
	}
	return nil
}

func (m *memStore) HasLiked(ctx context.Context, postID, userID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountLikes(ctx context.Context, postID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, l := range m.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}
