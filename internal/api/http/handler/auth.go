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

const unexpectedErrorMessage = "An unexpected error occurred."

// AuthService defines registration, login and logout operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

// CookieSettings describes the session cookie the handlers issue and clear.
type CookieSettings struct {
	Name   string
	Domain string
	Secure bool
	MaxAge int
}

// Auth handles the authentication pages and form posts.
type Auth struct {
	service AuthService
	codec   model.SessionCodec
	cookie  CookieSettings
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, codec model.SessionCodec, cookie CookieSettings, logger *logger.Logger) *Auth {
	return &Auth{
		service: service,
		codec:   codec,
		cookie:  cookie,
		logger:  logger,
	}
}

// Index sends authenticated visitors to the blog and everyone else to
// registration.
func (h *Auth) Index(c *gin.Context) {
	if _, ok := middleware.SessionFromContext(c); ok {
		c.Redirect(http.StatusFound, "/blog")
		return
	}
	c.Redirect(http.StatusFound, "/register")
}

// LoginPage renders the auth page in login mode.
func (h *Auth) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "authorisation.html", gin.H{
		"page":    "login",
		"message": nil,
		"success": nil,
	})
}

// RegisterPage renders the auth page in register mode.
func (h *Auth) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "authorisation.html", gin.H{
		"page":    "register",
		"message": nil,
		"success": nil,
	})
}

// Login authenticates the posted credentials and establishes the session
// cookie. Failures re-render the login form with an inline message.
func (h *Auth) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	session, err := h.service.Login(c.Request.Context(), email, password)
	if err != nil {
		var appErr *apperr.Error
		message := unexpectedErrorMessage
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			h.logger.Error("Auth handler: login failed",
				"error", err.Error())
		}

		c.HTML(http.StatusOK, "authorisation.html", gin.H{
			"page":    "login",
			"message": message,
			"success": false,
		})
		return
	}

	value, err := h.codec.Issue(session.Token)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue session cookie",
			"error", err.Error())
		c.HTML(http.StatusOK, "authorisation.html", gin.H{
			"page":    "login",
			"message": unexpectedErrorMessage,
			"success": false,
		})
		return
	}

	c.SetCookie(h.cookie.Name, value, h.cookie.MaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/blog")
}

// Register creates an account and re-renders the form with the outcome.
func (h *Auth) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.service.Register(c.Request.Context(), username, email, password)
	if err != nil {
		var appErr *apperr.Error
		message := unexpectedErrorMessage
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			h.logger.Error("Auth handler: registration failed",
				"username", username,
				"error", err.Error())
		}

		c.HTML(http.StatusOK, "authorisation.html", gin.H{
			"page":    "register",
			"message": message,
			"success": false,
		})
		return
	}

	c.HTML(http.StatusOK, "authorisation.html", gin.H{
		"page":    "register",
		"message": "Registration successful!",
		"success": true,
	})
}

// Logout destroys the session and clears the cookie. If the store cannot
// destroy it the visitor is sent back to the blog instead of an error page.
func (h *Auth) Logout(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.service.Logout(c.Request.Context(), session.Token); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"username", session.Username,
			"error", err.Error())
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/login")
}
