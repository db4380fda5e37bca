package routes

import (
	"darakbang/config"
	"darakbang/controllers"

	"github.com/gin-gonic/gin"
)

// SetupPushProxyRoutes registers the unauthenticated gateway proxy. The
// handler does its own CORS and method dispatch (405 for anything but POST
// and OPTIONS), so it is bound to every method and must be registered before
// any restrictive CORS middleware.
func SetupPushProxyRoutes(router *gin.Engine, cfg *config.Config) {
	router.Any("/api/send-push-all", controllers.SendPushAll(cfg.Push.GatewayURL))
}
