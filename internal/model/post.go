package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Post, error)
	Update(ctx context.Context, id uuid.UUID, title, description, date string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Post represents a stored blog post. Username is a snapshot of the owner's
// name at creation time; Date is a display string, not a sortable timestamp.
type Post struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Username    string
	Date        string
	Title       string
	Description string
	CreatedAt   time.Time
}
