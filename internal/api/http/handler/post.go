package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell-server/internal/api/http/middleware"
	"github.com/inkwellhq/inkwell-server/internal/apperr"
	"github.com/inkwellhq/inkwell-server/internal/logger"
	"github.com/inkwellhq/inkwell-server/internal/model"
)

// PostService defines the owned-post workflow operations.
type PostService interface {
	ListOwnedPosts(ctx context.Context, username string) ([]model.Post, error)
	CreatePost(ctx context.Context, username, title, description string) (model.Post, error)
	GetPost(ctx context.Context, ownerID, postID uuid.UUID) (model.Post, error)
	EditPost(ctx context.Context, ownerID, postID uuid.UUID, title, description string) error
	DeletePost(ctx context.Context, ownerID, postID uuid.UUID) error
}

// Post handles the blog pages and post mutations.
type Post struct {
	service PostService
	logger  *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(service PostService, logger *logger.Logger) *Post {
	return &Post{
		service: service,
		logger:  logger,
	}
}

// Blog lists the visitor's own posts.
func (h *Post) Blog(c *gin.Context) {
	session, _ := middleware.SessionFromContext(c)

	posts, err := h.service.ListOwnedPosts(c.Request.Context(), session.Username)
	if err != nil {
		h.logger.Error("Post handler: failed to list posts",
			"username", session.Username,
			"error", err.Error())
		c.String(http.StatusInternalServerError, "Unexpected error")
		return
	}

	c.HTML(http.StatusOK, "blog.html", gin.H{
		"username": session.Username,
		"posts":    posts,
	})
}

// NewForm renders the post-creation form. The username is passed through
// when a session exists but the page itself is not gated.
func (h *Post) NewForm(c *gin.Context) {
	var username string
	if session, ok := middleware.SessionFromContext(c); ok {
		username = session.Username
	}

	c.HTML(http.StatusOK, "form.html", gin.H{
		"post":       nil,
		"username":   username,
		"pageStatus": "createPost",
	})
}

// Create inserts a new post for the session user. A missing session yields a
// plain 400, not a redirect.
func (h *Post) Create(c *gin.Context) {
	var username string
	if session, ok := middleware.SessionFromContext(c); ok {
		username = session.Username
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	_, err := h.service.CreatePost(c.Request.Context(), username, title, description)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			c.String(appErr.Status, appErr.Message)
			return
		}
		h.logger.Error("Post handler: failed to create post",
			"username", username,
			"error", err.Error())
		c.String(http.StatusInternalServerError, "Unexpected error")
		return
	}

	c.Redirect(http.StatusFound, "/blog")
}

// EditForm fetches the post chosen on the blog page and renders it into the
// edit form.
func (h *Post) EditForm(c *gin.Context) {
	session, _ := middleware.SessionFromContext(c)

	postID, err := h.postID(c, "deleteItemId")
	if err != nil {
		h.logger.Warn("Post handler: bad edit target",
			"error", err.Error())
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), session.UserID, postID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.Error("Post handler: failed to fetch post for editing",
				"post_id", postID,
				"error", err.Error())
		}
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	c.HTML(http.StatusOK, "form.html", gin.H{
		"post":       post,
		"username":   session.Username,
		"pageStatus": "",
	})
}

// EditApply writes the edited fields back and returns to the blog. Backend
// failures are logged; the visitor is redirected either way.
func (h *Post) EditApply(c *gin.Context) {
	session, _ := middleware.SessionFromContext(c)

	postID, err := h.postID(c, "id")
	if err != nil {
		h.logger.Warn("Post handler: bad edit target",
			"error", err.Error())
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")

	if err := h.service.EditPost(c.Request.Context(), session.UserID, postID, title, description); err != nil {
		h.logger.Error("Post handler: failed to edit post",
			"post_id", postID,
			"error", err.Error())
	}

	c.Redirect(http.StatusFound, "/blog")
}

// Delete removes the chosen post and returns to the blog.
func (h *Post) Delete(c *gin.Context) {
	session, _ := middleware.SessionFromContext(c)

	postID, err := h.postID(c, "deleteItemId")
	if err != nil {
		h.logger.Warn("Post handler: bad delete target",
			"error", err.Error())
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), session.UserID, postID); err != nil {
		h.logger.Error("Post handler: failed to delete post",
			"post_id", postID,
			"error", err.Error())
	}

	c.Redirect(http.StatusFound, "/blog")
}

// postID reads the target post id from the named form field, falling back to
// the :id path param when the form does not carry it.
func (h *Post) postID(c *gin.Context, field string) (uuid.UUID, error) {
	raw := c.PostForm(field)
	if raw == "" {
		raw = c.Param("id")
	}
	return uuid.Parse(raw)
}
