package store

import (
	"context"
	"errors"

	"feed-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var user models.User
	query := `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, username, created_at`
	err := s.pool.QueryRow(ctx, query, username, passwordHash).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := s.pool.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, title, fileURL string, ownerID int) (*models.Post, error) {
	post := models.Post{Title: title, FileURL: fileURL, UserID: ownerID}
	query := `
		INSERT INTO posts (title, file_url, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, (SELECT username FROM users WHERE id = $3)
	`
	err := s.pool.QueryRow(ctx, query, title, fileURL, ownerID).Scan(&post.ID, &post.CreatedAt, &post.Author)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostgresStore) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	query := `
		SELECT p.id, p.title, p.file_url, p.user_id, u.username, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		OFFSET $1 LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.FileURL, &p.UserID, &p.Author, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *PostgresStore) GetPost(ctx context.Context, id int) (*models.Post, error) {
	var p models.Post
	query := `
		SELECT p.id, p.title, p.file_url, p.user_id, u.username, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	err := s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.FileURL, &p.UserID, &p.Author, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) UpdatePostTitle(ctx context.Context, id int, title string) (*models.Post, error) {
	var p models.Post
	query := `
		UPDATE posts SET title = $2 WHERE id = $1
		RETURNING id, title, file_url, user_id,
			(SELECT username FROM users WHERE id = posts.user_id), created_at
	`
	err := s.pool.QueryRow(ctx, query, id, title).Scan(&p.ID, &p.Title, &p.FileURL, &p.UserID, &p.Author, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePostTree removes dependent comment and like rows together with the
// post row in one transaction, so a crash mid-sequence never leaves orphans
// behind a still-existing post.
func (s *PostgresStore) DeletePostTree(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) CreateComment(ctx context.Context, postID int, text string, ownerID int) (*models.Comment, error) {
	c := models.Comment{Text: text, UserID: ownerID, PostID: postID}
	query := `
		INSERT INTO comments (text, user_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, (SELECT username FROM users WHERE id = $2)
	`
	err := s.pool.QueryRow(ctx, query, text, ownerID, postID).Scan(&c.ID, &c.CreatedAt, &c.Author)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) ListCommentsForPost(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.text, c.user_id, c.post_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.UserID, &c.PostID, &c.Author, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *PostgresStore) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	var c models.Comment
	query := `
		SELECT c.id, c.text, c.user_id, c.post_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	err := s.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Text, &c.UserID, &c.PostID, &c.Author, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) UpdateCommentText(ctx context.Context, id int, text string) (*models.Comment, error) {
	var c models.Comment
	query := `
		UPDATE comments SET text = $2 WHERE id = $1
		RETURNING id, text, user_id, post_id,
			(SELECT username FROM users WHERE id = comments.user_id), created_at
	`
	err := s.pool.QueryRow(ctx, query, id, text).Scan(&c.ID, &c.Text, &c.UserID, &c.PostID, &c.Author, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateLike(ctx context.Context, postID, userID int) error {
	// ON CONFLICT keeps a double-tap idempotent
	_, err := s.pool.Exec(ctx,
		`INSERT INTO likes (user_id, post_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING`,
		userID, postID)
	return err
}

func (s *PostgresStore) DeleteLike(ctx context.Context, postID, userID int) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (s *PostgresStore) HasLiked(ctx context.Context, postID, userID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`
	if err := s.pool.QueryRow(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) CountLikes(ctx context.Context, postID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1`
	if err := s.pool.QueryRow(ctx, query, postID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
