// Package router wires the HTTP surface: middleware chain, template
// rendering and the route table.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell-server/internal/api/http/handler"
	"github.com/inkwellhq/inkwell-server/internal/api/http/middleware"
)

// Router assembles the gin engine from handlers and middleware.
type Router struct {
	auth          *handler.Auth
	post          *handler.Post
	authenticate  *middleware.Authenticate
	logging       *middleware.Logging
	templatesGlob string
	staticDir     string
}

// New creates a new Router.
func New(
	auth *handler.Auth,
	post *handler.Post,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
	templatesGlob string,
	staticDir string,
) *Router {
	return &Router{
		auth:          auth,
		post:          post,
		authenticate:  authenticate,
		logging:       logging,
		templatesGlob: templatesGlob,
		staticDir:     staticDir,
	}
}

// Register builds the engine with the full route table.
func (r *Router) Register() *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(r.logging.Handle())
	e.Use(r.authenticate.Resolve())

	e.LoadHTMLGlob(r.templatesGlob)
	e.Static("/static", r.staticDir)

	requireSession := r.authenticate.RequireSession("/login")

	e.GET("/", r.auth.Index)
	e.GET("/login", r.auth.LoginPage)
	e.GET("/register", r.auth.RegisterPage)
	e.GET("/new", r.post.NewForm)
	e.GET("/blog", requireSession, r.post.Blog)
	e.GET("/logout", requireSession, r.auth.Logout)

	e.POST("/login", r.auth.Login)
	e.POST("/register", r.auth.Register)
	// /posts answers a plain 400 to anonymous requests instead of redirecting.
	e.POST("/posts", r.post.Create)
	e.POST("/edit/:id", requireSession, r.post.EditForm)
	e.POST("/editCurrent/:id", requireSession, r.post.EditApply)
	e.POST("/delete", requireSession, r.post.Delete)

	return e
}
