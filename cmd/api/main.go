package main

import (
	"log"
	"os"

	_ "communityportal/docs"
	"communityportal/internal/config"
	"communityportal/internal/middleware"
	"communityportal/internal/routes"
	"communityportal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Community Portal API
// @version         1.0
// @description     Read API for the bilingual community portal: listings, detail pages and search.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	envPath := "/app/.env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../../.env"
	}
	// the environment may already be populated by the container
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		cfg.CloseAll()
		log.Fatalf("Error creating config: %v", err)
	}
	defer cfg.CloseAll()

	cfg.Logger.Info("Starting server", map[string]interface{}{"port": utils.GetPort()})

	engine := middleware.SetupServer(cfg)

	routes.InitiateRoutes(engine, cfg)

	startServer(engine)
}

func startServer(engine *gin.Engine) {
	addr := ":" + utils.GetPort()
	certFile, keyFile := utils.GetCertFiles()
	if certFile != "" && keyFile != "" {
		log.Println("Starting server with TLS...")
		if err := engine.RunTLS(addr, certFile, keyFile); err != nil {
			log.Fatalf("Error starting TLS server: %v", err)
		}
	} else {
		log.Println("Starting server...")
		if err := engine.Run(addr); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
