// Package server assembles the HTTP router.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/auth"
	"github.com/yukikurage/priority-focus-api/internal/config"
	"github.com/yukikurage/priority-focus-api/internal/handlers"
	"github.com/yukikurage/priority-focus-api/internal/middleware"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"github.com/yukikurage/priority-focus-api/internal/services"
	"gorm.io/gorm"
)

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}

// NewRouter wires repositories, services and handlers onto a gin engine
func NewRouter(cfg *config.Config, db *gorm.DB, log *slog.Logger) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	managerRepo := repository.NewManagerRepository(db)
	teamMemberRepo := repository.NewTeamMemberRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)

	authService := services.NewAuthService(managerRepo, tokens)
	teamMemberService := services.NewTeamMemberService(teamMemberRepo)
	priorityService := services.NewPriorityService(priorityRepo, teamMemberRepo)

	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, log)
	teamMemberHandler := handlers.NewTeamMemberHandler(teamMemberService, log)
	priorityHandler := handlers.NewPriorityHandler(priorityService, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg)))

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	requireAuth := middleware.RequireAuth(tokens)
	teamMemberAccess := middleware.RequireTeamMemberAccess(teamMemberService, log)
	priorityAccess := middleware.RequirePriorityAccess(priorityService, log)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
			authRoutes.PATCH("/settings", requireAuth, authHandler.UpdateSettings)
		}

		// Team member routes (protected)
		members := api.Group("/team-members")
		members.Use(requireAuth)
		{
			members.GET("", teamMemberHandler.ListTeamMembers)
			members.POST("", teamMemberHandler.CreateTeamMember)
			members.PATCH("/reorder", teamMemberHandler.ReorderTeamMembers)
			members.GET("/:id", teamMemberAccess, teamMemberHandler.GetTeamMember)
			members.PATCH("/:id", teamMemberAccess, teamMemberHandler.UpdateTeamMember)
			members.DELETE("/:id", teamMemberAccess, teamMemberHandler.ArchiveTeamMember)
			members.GET("/:id/priorities", teamMemberAccess, priorityHandler.ListPriorities)
			members.POST("/:id/priorities", teamMemberAccess, priorityHandler.CreatePriority)
		}

		// Priority routes (protected)
		priorities := api.Group("/priorities")
		priorities.Use(requireAuth)
		{
			priorities.PATCH("/reorder", priorityHandler.ReorderPriorities)
			priorities.GET("/:id", priorityAccess, priorityHandler.GetPriority)
			priorities.PATCH("/:id", priorityAccess, priorityHandler.UpdatePriority)
			priorities.DELETE("/:id", priorityAccess, priorityHandler.DeletePriority)
		}
	}

	return r
}
