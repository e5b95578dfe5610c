package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell-server/internal/apperr"
	"github.com/inkwellhq/inkwell-server/internal/logger"
	"github.com/inkwellhq/inkwell-server/internal/model"
)

// updatedPrefix marks edited posts in the display date. The two spaces are
// part of the rendered format.
const updatedPrefix = "updated:  "

// Post implements the owned-post workflow.
type Post struct {
	postStore model.PostStore
	userStore model.UserStore
	logger    *logger.Logger
	now       func() time.Time
}

// NewPost creates a new Post service.
func NewPost(
	postStore model.PostStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore: postStore,
		userStore: userStore,
		logger:    logger,
		now:       time.Now,
	}
}

// displayDate renders calendar fields of t as day.month.year without zero
// padding.
func displayDate(t time.Time) string {
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

// ListOwnedPosts returns the posts owned by the named user in insertion
// order. An unknown username degrades to an empty list: the blog page shows
// nothing rather than an error.
func (s *Post) ListOwnedPosts(ctx context.Context, username string) ([]model.Post, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("Post service: listing for unknown user",
			"username", username)
		return []model.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	posts, err := s.postStore.GetByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by owner id: %w", err)
	}

	if posts == nil {
		posts = []model.Post{}
	}

	return posts, nil
}

// CreatePost inserts a post owned by the named user, stamping the current
// display date and the username snapshot.
func (s *Post) CreatePost(ctx context.Context, username, title, description string) (model.Post, error) {
	if username == "" {
		return model.Post{}, apperr.NewNotAuthenticated()
	}

	user, err := s.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Post service: owner lookup missed",
			"username", username)
		return model.Post{}, apperr.NewUserLookupFailed(err)
	}
	if err != nil {
		return model.Post{}, apperr.NewUserLookupFailed(err)
	}

	post := model.Post{
		ID:          uuid.New(),
		OwnerID:     user.ID,
		Username:    username,
		Date:        displayDate(s.now()),
		Title:       title,
		Description: description,
	}

	post, err = s.postStore.Create(ctx, post)
	if err != nil {
		s.logger.Error("Post service: failed to insert post",
			"username", username,
			"error", err.Error())
		return model.Post{}, apperr.NewInsertFailed(err)
	}

	s.logger.Info("Post service: post created",
		"username", username,
		"post_id", post.ID)

	return post, nil
}

// GetPost fetches a single post by key. A post owned by someone else is
// reported as missing, never leaked.
func (s *Post) GetPost(ctx context.Context, ownerID, postID uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.OwnerID != ownerID {
		return model.Post{}, model.ErrNotFound
	}

	return post, nil
}

// EditPost rewrites title, description and the display date of an owned
// post. The backend result is returned to the caller; the route layer
// decides how much of it to surface.
func (s *Post) EditPost(ctx context.Context, ownerID, postID uuid.UUID, title, description string) error {
	if _, err := s.GetPost(ctx, ownerID, postID); err != nil {
		return err
	}

	date := updatedPrefix + displayDate(s.now())

	if err := s.postStore.Update(ctx, postID, title, description, date); err != nil {
		s.logger.Error("Post service: failed to update post",
			"post_id", postID,
			"error", err.Error())
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// DeletePost removes an owned post by key.
func (s *Post) DeletePost(ctx context.Context, ownerID, postID uuid.UUID) error {
	if _, err := s.GetPost(ctx, ownerID, postID); err != nil {
		return err
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		s.logger.Error("Post service: failed to delete post",
			"post_id", postID,
			"error", err.Error())
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
