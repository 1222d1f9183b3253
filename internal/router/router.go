package router

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/handler"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/middleware"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB                 *gorm.DB
	Logger             *zap.Logger
	JWTSecret          string
	Denylist           *service.TokenDenylist
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	ProjectHandler     *handler.ProjectHandler
	ContributorHandler *handler.ContributorHandler
	IssueHandler       *handler.IssueHandler
	CommentHandler     *handler.CommentHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	api := r.Group("/api/v1")

	// Public routes (no auth)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.Signup)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB, deps.Denylist, deps.Logger))
	{
		authed.GET("/auth/me", deps.AuthHandler.Me)
		authed.POST("/auth/refresh", deps.AuthHandler.Refresh)
		authed.POST("/auth/logout", deps.AuthHandler.Logout)

		users := authed.Group("/users")
		{
			users.GET("", deps.UserHandler.List)
			users.GET("/:id", deps.UserHandler.Get)
			users.PUT("/:id", deps.UserHandler.Update)
		}

		projects := authed.Group("/projects")
		{
			projects.POST("", deps.ProjectHandler.Create)
			projects.GET("", deps.ProjectHandler.List)
			projects.GET("/:id", deps.ProjectHandler.Get)
			projects.PUT("/:id", deps.ProjectHandler.Update)
			projects.DELETE("/:id", deps.ProjectHandler.Delete)

			// Contributors under projects
			projects.POST("/:id/contributors", deps.ContributorHandler.Add)
			projects.GET("/:id/contributors", deps.ContributorHandler.List)
			projects.GET("/:id/contributors/:user_id", deps.ContributorHandler.Get)
			projects.DELETE("/:id/contributors/:user_id", deps.ContributorHandler.Remove)

			// Issues under projects
			projects.POST("/:id/issues", deps.IssueHandler.Create)
			projects.GET("/:id/issues", deps.IssueHandler.List)
			projects.GET("/:id/issues/:issue_id", deps.IssueHandler.Get)
			projects.PUT("/:id/issues/:issue_id", deps.IssueHandler.Update)
			projects.DELETE("/:id/issues/:issue_id", deps.IssueHandler.Delete)

			// Comments under issues
			projects.POST("/:id/issues/:issue_id/comments", deps.CommentHandler.Create)
			projects.GET("/:id/issues/:issue_id/comments", deps.CommentHandler.List)
			projects.GET("/:id/issues/:issue_id/comments/:comment_id", deps.CommentHandler.Get)
			projects.PUT("/:id/issues/:issue_id/comments/:comment_id", deps.CommentHandler.Update)
			projects.DELETE("/:id/issues/:issue_id/comments/:comment_id", deps.CommentHandler.Delete)
		}
	}
}
