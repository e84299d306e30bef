package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/handler"
	"github.com/stemsi/academia-backend/internal/middleware"
	"github.com/stemsi/academia-backend/internal/response"
)

// exportPath serves an already-zipped workbook; brotli would only waste CPU.
const exportPath = "/api/students/export/"

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
	Subject *handler.SubjectHandler
	Health  *handler.HealthHandler
}

// SetupRouter configures the Gin engine, global middleware and routes.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: cfg.BrotliMinLength,
		Skipper:   middleware.SkipPaths(exportPath),
	}))

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api")
	api.Use(middleware.NoStore())

	// Reads stay unthrottled; writes share one bucket per client IP.
	var write gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit > 0 {
		write = middleware.NewRateLimiter(cfg.RateLimit, time.Minute).Middleware()
	}

	// ─── Students ──────────────────────────────────────────────────────
	students := api.Group("/students")
	{
		students.GET("/all/", handlers.Student.ListStudents)
		students.GET("/", handlers.Student.ListBySubject)
		students.POST("/add/", write, handlers.Student.AddStudent)
		students.DELETE("/delete/", write, handlers.Student.DeleteStudent)
		students.PATCH("/update/", write, handlers.Student.UpdateStudent)
		students.POST("/subject/add/", write, handlers.Student.AssignSubject)
		students.GET("/export/", handlers.Student.ExportStudents)
	}

	// ─── Subjects ──────────────────────────────────────────────────────
	subjects := api.Group("/subjects")
	{
		subjects.GET("/all/", handlers.Subject.GetAll)
		subjects.POST("/add/", write, handlers.Subject.Create)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "not found")
	})

	return router
}
