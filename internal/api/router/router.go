package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the cross-cutting parts of the router
type Options struct {
	Resolver       auth.Resolver
	CookieName     string
	AllowedOrigins []string
	// HealthCheck reports whether the service's backing stores are reachable
	HealthCheck func(ctx context.Context) error
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(opts.AllowedOrigins))

	r.GET("/health", healthHandler(deps.Logger, opts.HealthCheck))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	profileHandler := handler.NewProfileHandler(deps)
	uploadHandler := handler.NewUploadHandler(deps)

	requireAuth := auth.RequireAuth()

	v1 := r.Group("/api/v1")
	v1.Use(auth.Authenticate(opts.Resolver, opts.CookieName, deps.Logger))
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.POST("", requireAuth, jobHandler.CreateJob)
			jobs.PUT("/:id", requireAuth, jobHandler.UpdateJob)
			jobs.PATCH("/:id/status", requireAuth, jobHandler.UpdateJobStatus)
			jobs.DELETE("/:id", requireAuth, jobHandler.DeleteJob)
		}

		applications := v1.Group("/applications", requireAuth)
		{
			applications.POST("", applicationHandler.SubmitApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.PUT("/:id/status", applicationHandler.UpdateApplicationStatus)
			applications.GET("/:id/logs", applicationHandler.ListStatusLogs)
		}

		profile := v1.Group("/profile", requireAuth)
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		v1.POST("/uploads", requireAuth, uploadHandler.UploadResume)
	}

	return r
}

func healthHandler(logger *slog.Logger, check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				logger.Error("Health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": "job-board-api",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "job-board-api",
		})
	}
}
