package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solar-roi/internal/api/handlers"
	"solar-roi/internal/api/middleware"
	"solar-roi/internal/metrics"
	"solar-roi/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	apiKey := os.Getenv("OPENWEATHER_KEY")
	if apiKey == "" {
		log.Printf("WARNING: OPENWEATHER_KEY is not set; weather requests will fail")
	}

	// Log working directory and important paths for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		systemDir := filepath.Join(wd, "examples", "systems")
		if info, err := os.Stat(systemDir); err == nil && info.IsDir() {
			log.Printf("System directory found: %s", systemDir)
		} else {
			log.Printf("System directory not found at: %s (error: %v)", systemDir, err)
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	collector := metrics.NewCollector("solar_roi")

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics(collector))

	// The provider key lives in the client; handlers and requests never see it
	weatherClient := weather.NewClient(apiKey, os.Getenv("OPENWEATHER_BASE_URL"))

	// Initialize handlers
	estimateHandler := handlers.NewEstimateHandler(weatherClient, collector)
	sweepHandler := handlers.NewSweepHandler(weatherClient, collector)
	systemHandler := handlers.NewSystemHandler()
	weatherHandler := handlers.NewWeatherHandler(weatherClient, collector)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Diagnostic endpoint to check the system preset directory
	router.GET("/debug/system-dir", func(c *gin.Context) {
		wd, _ := os.Getwd()
		dir := systemHandler.GetSystemDir()
		_, statErr := os.Stat(dir)

		var entries []string
		if dirEntries, err := os.ReadDir(dir); err == nil {
			for _, e := range dirEntries {
				entries = append(entries, e.Name())
			}
		}

		c.JSON(200, gin.H{
			"working_directory": wd,
			"system_dir":        dir,
			"system_dir_exists": statErr == nil,
			"entries":           entries,
			"entry_count":       len(entries),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/estimate", estimateHandler.RunEstimate)
		api.POST("/estimate/compare", estimateHandler.CompareEstimates)

		api.GET("/sweep", sweepHandler.SweepSizes)

		api.GET("/systems", systemHandler.ListSystems)
		api.GET("/weather", weatherHandler.GetCurrent)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
