package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/internal/handlers"
	"github.com/planit-dev/planit/internal/middleware"
	"github.com/planit-dev/planit/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		activities := api.Group("/activities", middleware.AuthMiddleware())
		{
			activities.POST("", handlers.CreateActivity)
			activities.GET("", handlers.ListActivities)
			activities.PUT("/:activity_id", handlers.UpdateActivity)
			activities.DELETE("/:activity_id", handlers.DeleteActivity)
		}

		goals := api.Group("/goals", middleware.AuthMiddleware())
		{
			goals.POST("", handlers.CreateGoal)
			goals.GET("", handlers.ListGoals)
			goals.PUT("/:goal_id", handlers.UpdateGoal)
			goals.DELETE("/:goal_id", handlers.DeleteGoal)
		}

		api.DELETE("/timelines/:timeline_id", middleware.AuthMiddleware(), handlers.DeleteTimeline)

		teams := api.Group("/teams", middleware.AuthMiddleware())
		{
			teams.POST("", handlers.CreateTeam)
			teams.GET("", handlers.GetTeams)
			teams.GET("/:team_id", handlers.GetTeam)
			teams.PUT("/:team_id", handlers.UpdateTeam)
			teams.DELETE("/:team_id", handlers.DeleteTeam)
			teams.POST("/:team_id/meetings", handlers.CreateMeeting)
		}

		meetings := api.Group("/meetings", middleware.AuthMiddleware())
		{
			meetings.PUT("/:meeting_id", handlers.UpdateMeeting)
			meetings.DELETE("/:meeting_id", handlers.DeleteMeeting)
		}

		api.PUT("/meeting-invitations/:meeting_id/respond", middleware.AuthMiddleware(), handlers.RespondInvitation)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.GetNotifications)
			notifications.PUT("/mark-all-read", handlers.MarkAllNotificationsRead)
			notifications.PUT("/:notification_id", handlers.MarkNotificationRead)
			notifications.DELETE("/:notification_id", handlers.DeleteNotification)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("/search", handlers.SearchUsers)
			users.GET("/availability", handlers.GetAvailability)
			users.GET("/by-email/:email", handlers.GetUserByEmail)
			users.GET("/:user_id", handlers.GetUser)
			users.PUT("/:user_id", handlers.UpdateUser)
			users.DELETE("/:user_id", handlers.DeleteUser)
		}
	}

	return r
}
