package routes

import (
	"darakbang/config"
	"darakbang/controllers"
	"darakbang/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the console API. Everything under /api/admin
// except login requires an operator session; destructive routes additionally
// go through the role check.
func SetupAdminRoutes(router *gin.Engine, cfg *config.Config) {
	api := router.Group("/api/admin")

	api.POST("/login", controllers.AdminLogin(cfg))

	authed := api.Group("")
	authed.Use(middlewares.AdminAuthMiddleware(cfg))
	{
		authed.GET("/dashboard", controllers.GetDashboard)

		authed.GET("/posts", controllers.GetPosts)
		authed.POST("/posts", controllers.CreatePost)
		authed.GET("/posts/:id", controllers.GetPost)
		authed.PUT("/posts/:id", controllers.UpdatePost)
		authed.PATCH("/posts/:id/views", controllers.UpdatePostViews)
		authed.PATCH("/posts/:id/visibility", controllers.TogglePostVisibility)
		authed.DELETE("/posts/:id", middlewares.RBACMiddleware("post", "delete"), controllers.DeletePost)

		authed.GET("/comments", controllers.GetComments)
		authed.POST("/posts/:id/comments", controllers.CreateComment)
		authed.PATCH("/comments/:commentId/pin", controllers.ToggleCommentPin)
		authed.DELETE("/comments/:commentId", middlewares.RBACMiddleware("comment", "delete"), controllers.DeleteComment)

		authed.GET("/users", controllers.GetUsers)
		authed.PATCH("/users/:id/ban", middlewares.RBACMiddleware("user", "ban"), controllers.ToggleUserBan)

		authed.GET("/reports", controllers.GetReports)
		authed.PATCH("/reports/:id", controllers.ProcessReport)
		authed.DELETE("/reports/:id", middlewares.RBACMiddleware("report", "delete"), controllers.DeleteReport)

		authed.GET("/notices", controllers.GetNotices)
		authed.POST("/notices", controllers.CreateNotice)
		authed.PUT("/notices/:id", controllers.UpdateNotice)
		authed.PATCH("/notices/:id/active", controllers.ToggleNoticeActive)
		authed.DELETE("/notices/:id", middlewares.RBACMiddleware("notice", "delete"), controllers.DeleteNotice)
		authed.POST("/notices/image", controllers.UploadNoticeImage)

		authed.GET("/usage", controllers.GetUsage)

		authed.GET("/push/overview", controllers.GetPushOverview)
		push := authed.Group("/push", middlewares.RBACMiddleware("push", "send"))
		{
			push.POST("/custom", controllers.SendCustomPush)
			push.POST("/notice/:id", controllers.SendNoticePush)
			push.POST("/post/:id", controllers.SendPostPush)
		}

		authed.GET("/logs", controllers.GetAdminActionLogs)
	}
}
