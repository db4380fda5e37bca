package main

import (
	"log"
	"strconv"

	"darakbang/config"
	"darakbang/db"
	"darakbang/middlewares"
	"darakbang/routes"
	"darakbang/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := middlewares.InitCasbin(cfg); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	services.InitPushService(cfg)
	if err := services.InitStorageService(cfg); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// The proxy is registered before the CORS middleware: it serves any
	// origin with its own headers, which the console allowlist below would
	// otherwise reject first.
	routes.SetupPushProxyRoutes(router, cfg)

	// Console frontend origin (Vite dev server)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.SetupAdminRoutes(router, cfg)

	return router
}
