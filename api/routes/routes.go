package routes

import (
	"net/http"

	"blogsapi/api/handler"
	"blogsapi/api/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Blogs          *handler.BlogHandler
	Posts          *handler.PostHandler
	AuthMiddleware middleware.AuthMiddleware
	Gatherer       prometheus.Gatherer
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if r.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{})))
	}

	authenticated := r.AuthMiddleware.Require(middleware.PolicyAuthenticated)
	user := r.AuthMiddleware.Require(middleware.PolicyUser)

	api := e.Group("/api/v1")

	api.POST("/login", r.Auth.Login)
	api.POST("/refresh", r.Auth.Refresh)

	api.POST("/users", r.Users.Register)
	api.GET("/users", r.Users.List, user)
	api.GET("/users/:id", r.Users.Get, authenticated)
	api.PUT("/users/edit", r.Users.Edit, user)
	api.PUT("/users/edit/password", r.Users.ChangePassword, authenticated)
	api.DELETE("/users/:id", r.Users.Delete, authenticated)
	api.GET("/users/:id/blogs", r.Blogs.ListByUser, user)
	api.GET("/users/:id/posts", r.Posts.ListByUser, user)

	api.POST("/blogs", r.Blogs.Create, user)
	api.PUT("/blogs", r.Blogs.Edit, user)
	api.GET("/blogs/:id", r.Blogs.Get, authenticated)
	api.DELETE("/blogs/:id", r.Blogs.Delete, user)
	api.PUT("/blogs/:id", r.Blogs.Reactivate, user)
	api.POST("/blogs/:id/posts", r.Posts.Create, user)

	api.PUT("/posts/:id", r.Posts.Edit, user)
	api.DELETE("/posts/:id", r.Posts.Delete, user)
	api.POST("/post/:id/comments", r.Posts.Comment, user)
}
