package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bentoshop/pkg/logger"
	"bentoshop/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(catalogHandler *CatalogHandler, imageHandler *ImageHandler) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("inventory-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "inventory-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	categories := router.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.POST("", catalogHandler.CreateCategory)
		categories.DELETE("/:id", catalogHandler.DeleteCategory)
	}

	bands := router.Group("/bands")
	{
		bands.GET("", catalogHandler.GetBands)
		bands.POST("", catalogHandler.CreateBand)
		bands.DELETE("/:id", catalogHandler.DeleteBand)
		bands.GET("/:bandId/artists", catalogHandler.GetBandArtists)
	}

	artists := router.Group("/artists")
	{
		artists.GET("", catalogHandler.GetArtists)
		artists.POST("", catalogHandler.CreateArtist)
		artists.PUT("/:id", catalogHandler.UpdateArtist)
		artists.DELETE("/:id", catalogHandler.DeleteArtist)
	}

	products := router.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.POST("", catalogHandler.CreateProduct)
		products.PUT("/:id", catalogHandler.UpdateProduct)
		products.DELETE("/:id", catalogHandler.DeleteProduct)
	}

	router.POST("/upload", imageHandler.Upload)

	images := router.Group("/images")
	{
		images.GET("", imageHandler.ListImages)
		images.GET("/:filename", imageHandler.GetImage)
		images.DELETE("/:filename", imageHandler.DeleteImage)
	}

	return router
}
