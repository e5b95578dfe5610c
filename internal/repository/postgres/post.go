package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/inkwellhq/inkwell-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (post_id, owner_id, username, date, title, description)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING post_id, owner_id, username, date, title, description, created_at`

	var savedPost model.Post
	err := r.db.QueryRow(ctx, query,
		post.ID, post.OwnerID, post.Username, post.Date, post.Title, post.Description,
	).Scan(
		&savedPost.ID, &savedPost.OwnerID, &savedPost.Username,
		&savedPost.Date, &savedPost.Title, &savedPost.Description, &savedPost.CreatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return savedPost, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT post_id, owner_id, username, date, title, description, created_at
			  FROM posts WHERE post_id = $1`

	var post model.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.OwnerID, &post.Username,
		&post.Date, &post.Title, &post.Description, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	// Insertion order: the display date is not sortable.
	query := `SELECT post_id, owner_id, username, date, title, description, created_at
			  FROM posts WHERE owner_id = $1
			  ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by owner id: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID, &post.OwnerID, &post.Username,
			&post.Date, &post.Title, &post.Description, &post.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, title, description, date string) error {
	const query = `UPDATE posts SET title = $2, description = $3, date = $4 WHERE post_id = $1`

	cmd, err := r.db.Exec(ctx, query, id, title, description, date)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM posts WHERE post_id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
