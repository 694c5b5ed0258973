package routes

import (
	"Perkdraft/controllers"
	"Perkdraft/services/session"
	utils "Perkdraft/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, manager *session.Manager) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", controllers.Ping)

	api := router.Group("/api")

	sessions := api.Group("/sessions")
	{
		sessions.POST("", controllers.CreateSession(manager))

		sessions.POST("/join", controllers.JoinSession(manager))

		sessions.POST("/update-name", controllers.UpdatePlayerName(manager))

		sessions.POST("/roll-rewards", controllers.RollRewards(manager))

		sessions.POST("/lock-selection", controllers.LockSelection(manager))

		sessions.POST("/update-candidates", controllers.UpdateCandidates(manager))

		sessions.POST("/force-advance", controllers.ForceAdvance(manager))

		sessions.POST("/kick", controllers.KickPlayer(manager))

		sessions.GET("/:code", controllers.GetSession(manager))
	}

	api.GET("/packs/:code", controllers.GetPack(manager))
}
