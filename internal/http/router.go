package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripdiary/internal/config"
	h "tripdiary/internal/http/handlers"
	"tripdiary/internal/http/middleware"
	"tripdiary/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the services the router mounts.
type Deps struct {
	Trips   services.TripService
	Reports services.ReportService
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.BodyLimit(env.BodyLimitBytes),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "Not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	handlers := h.Handlers{
		Trips:       deps.Trips,
		Reports:     deps.Reports,
		PingMessage: env.PingMessage,
		StoreName:   env.TripStore,
	}

	api := r.Group("/api")
	{
		api.GET("/ping", handlers.Ping)
		api.GET("/health", handlers.Health)

		auth := middleware.BearerAuth(env.AuthSecret)

		trips := api.Group("/trips", auth)
		trips.GET("", handlers.GetTrips)
		trips.POST("", handlers.CreateTrip)
		trips.POST("/bulk", handlers.BulkTrips)
		trips.GET("/:id", handlers.GetTrip)
		trips.DELETE("/:id", handlers.DeleteTrip)

		reports := api.Group("/reports", auth)
		reports.GET("/trips.pdf", handlers.GetTripsReportPDF)
	}

	return r
}
