package http

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
)

// Handlers groups every handler the API mounts.
type Handlers struct {
	Health        *handlers.HealthHandler
	Tasks         *handlers.TaskHandler
	Sections      *handlers.SectionHandler
	Statuses      *handlers.ConfigHandler
	Priorities    *handlers.ConfigHandler
	Comments      *handlers.CommentHandler
	Watch         *handlers.WatchHandler
	Notifications *handlers.NotificationHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, identity ports.IdentityProvider) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(identity))
	{
		authed.GET("/statuses", h.Statuses.List)
		authed.POST("/statuses", h.Statuses.Create)
		authed.PATCH("/statuses/:id", h.Statuses.Update)
		authed.DELETE("/statuses/:id", h.Statuses.Delete)

		authed.GET("/priorities", h.Priorities.List)
		authed.POST("/priorities", h.Priorities.Create)
		authed.PATCH("/priorities/:id", h.Priorities.Update)
		authed.DELETE("/priorities/:id", h.Priorities.Delete)

		authed.GET("/task-sections", h.Sections.ListSections)
		authed.POST("/task-sections", h.Sections.CreateSection)
		authed.POST("/task-sections/reorder", h.Sections.ReorderSections)
		authed.PATCH("/task-sections/:id", h.Sections.UpdateSection)
		authed.DELETE("/task-sections/:id", h.Sections.DeleteSection)
		authed.POST("/task-sections/:id/move", h.Sections.MoveSection)

		authed.GET("/tasks", h.Tasks.ListTasks)
		authed.POST("/tasks", h.Tasks.CreateTask)
		authed.GET("/tasks/:id", h.Tasks.GetTask)
		authed.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		authed.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		authed.POST("/tasks/:id/section", h.Tasks.AssignSection)
		authed.POST("/tasks/:id/move", h.Tasks.MoveTask)
		authed.GET("/tasks/:id/comments", h.Comments.ListComments)
		authed.POST("/tasks/:id/comments", h.Comments.AddComment)
		authed.GET("/tasks/:id/watch", h.Watch.GetWatch)
		authed.POST("/tasks/:id/watch", h.Watch.SetWatch)

		authed.GET("/notifications", h.Notifications.ListNotifications)
		authed.GET("/notifications/unread-count", h.Notifications.UnreadCount)
		authed.POST("/notifications/read-all", h.Notifications.MarkAllRead)
		authed.POST("/notifications/:id/read", h.Notifications.MarkRead)
	}
}
