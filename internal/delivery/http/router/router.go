// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/router/handler"
	"inkwell/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	BlogHandler      *handler.BlogHandler
	PortfolioHandler *handler.PortfolioHandler
	ChatHandler      *handler.ChatHandler
	AppHandler       *handler.AppHandler
	TokenAppsHandler *handler.TokenAppsHandler
	AIHandler        *handler.AIHandler
	FileHandler      *handler.FileHandler
	AuthMiddleware   *middleware.AuthMiddleware
	APITokenGate     *middleware.APITokenGate
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// A bearer token is validated on every route it is presented on, public
	// ones included; only the absence of a token passes through untouched.
	e.Use(p.AuthMiddleware.Authenticate)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Stored files are public once uploaded; names are unguessable UUIDs.
	e.GET("/uploads/:filename", p.FileHandler.Serve)

	v1 := e.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.POST("/refresh-token", p.AuthHandler.RefreshToken)
		authGroup.POST("/forgot-password", p.AuthHandler.ForgotPassword)
	}

	// Public read-only routes
	publicGroup := v1.Group("/public")
	{
		publicGroup.GET("/portfolio/:username", p.PortfolioHandler.PublicView)
		publicGroup.GET("/portfolio/:username/qr", p.PortfolioHandler.ShareQR)

		publicGroup.GET("/blog", p.BlogHandler.PublicSearch)
		publicGroup.GET("/blog/:slug/slug", p.BlogHandler.PublicGetBySlug)
		publicGroup.PATCH("/blog/:slug/view", p.BlogHandler.RecordView)

		publicGroup.GET("/apps", p.AppHandler.PublicList)
		publicGroup.GET("/apps/:slug/slug", p.AppHandler.PublicGetBySlug)
	}

	// Quota-metered routes for third-party apps holding an API token
	tokenGroup := v1.Group("/token", p.APITokenGate.Gate)
	{
		tokenGroup.POST("/ai/ask", p.AIHandler.AskWithToken)
	}

	// Everything below requires a valid access token
	userGroup := v1.Group("/user", p.AuthMiddleware.RequireAuth)
	{
		userGroup.GET("/profile", p.UserHandler.GetProfile)
		userGroup.PUT("/profile", p.UserHandler.UpdateProfile)
		userGroup.PUT("/change-password", p.UserHandler.ChangePassword)
		userGroup.POST("/logout", p.AuthHandler.Logout)

		blogGroup := userGroup.Group("/blog")
		{
			blogGroup.GET("", p.BlogHandler.ListMine)
			blogGroup.POST("", p.BlogHandler.Create)
			blogGroup.GET("/:id", p.BlogHandler.GetByID)
			blogGroup.PUT("/:id", p.BlogHandler.Update)
			blogGroup.PATCH("/:id/publish", p.BlogHandler.SetPublished)
			blogGroup.PATCH("/:id/restore", p.BlogHandler.Restore)
			blogGroup.DELETE("/:id", p.BlogHandler.Delete)
			blogGroup.DELETE("/:id/permanent", p.BlogHandler.HardDelete)
		}

		portfolioGroup := userGroup.Group("/portfolio")
		{
			portfolioGroup.GET("/profile", p.PortfolioHandler.GetProfile)
			portfolioGroup.PUT("/profile", p.PortfolioHandler.UpsertProfile)

			portfolioGroup.GET("/projects", p.PortfolioHandler.ListProjects)
			portfolioGroup.POST("/projects", p.PortfolioHandler.SaveProject)
			portfolioGroup.DELETE("/projects/:id", p.PortfolioHandler.DeleteProject)

			portfolioGroup.GET("/skills", p.PortfolioHandler.ListSkills)
			portfolioGroup.POST("/skills", p.PortfolioHandler.SaveSkill)
			portfolioGroup.DELETE("/skills/:id", p.PortfolioHandler.DeleteSkill)

			portfolioGroup.GET("/experiences", p.PortfolioHandler.ListExperiences)
			portfolioGroup.POST("/experiences", p.PortfolioHandler.SaveExperience)
			portfolioGroup.DELETE("/experiences/:id", p.PortfolioHandler.DeleteExperience)
		}

		chatGroup := userGroup.Group("/chat")
		{
			chatGroup.GET("/rooms", p.ChatHandler.ListRooms)
			chatGroup.POST("/rooms", p.ChatHandler.CreateRoom)
			chatGroup.POST("/rooms/direct", p.ChatHandler.OpenDirectRoom)
			chatGroup.GET("/rooms/:id/members", p.ChatHandler.ListMembers)
			chatGroup.POST("/rooms/:id/members", p.ChatHandler.AddMember)
			chatGroup.DELETE("/rooms/:id/members/:userId", p.ChatHandler.RemoveMember)
			chatGroup.GET("/rooms/:id/messages", p.ChatHandler.ListMessages)
			chatGroup.POST("/rooms/:id/messages", p.ChatHandler.SendMessage)
		}

		fileGroup := userGroup.Group("/files")
		{
			fileGroup.GET("", p.FileHandler.List)
			fileGroup.POST("", p.FileHandler.Upload)
			fileGroup.DELETE("/:filename", p.FileHandler.Delete)
		}

		aiGroup := userGroup.Group("/ai")
		{
			aiGroup.POST("/ask", p.AIHandler.Ask)
			aiGroup.DELETE("/history", p.AIHandler.Reset)
		}

		// Admin-only management routes
		adminOnly := p.AuthMiddleware.RequireRole(entity.RoleAdmin)

		userGroup.DELETE("/files", p.FileHandler.DeleteAll, adminOnly)

		usersGroup := userGroup.Group("/users", adminOnly)
		{
			usersGroup.GET("", p.UserHandler.List)
			usersGroup.DELETE("/:id", p.UserHandler.Delete)
		}

		appsGroup := userGroup.Group("/apps", adminOnly)
		{
			appsGroup.GET("", p.AppHandler.List)
			appsGroup.POST("", p.AppHandler.Create)
			appsGroup.GET("/:id", p.AppHandler.Get)
			appsGroup.PUT("/:id", p.AppHandler.Update)
			appsGroup.DELETE("/:id", p.AppHandler.Delete)
		}

		tokenAppsGroup := userGroup.Group("/token-apps", adminOnly)
		{
			tokenAppsGroup.GET("", p.TokenAppsHandler.List)
			tokenAppsGroup.POST("", p.TokenAppsHandler.Create)
			tokenAppsGroup.GET("/:id", p.TokenAppsHandler.Get)
			tokenAppsGroup.PUT("/:id", p.TokenAppsHandler.Update)
			tokenAppsGroup.DELETE("/:id", p.TokenAppsHandler.Delete)
		}
	}
}
