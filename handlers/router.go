package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"folio/api/config"
	"folio/api/middleware"
	"folio/api/utils"
)

// Deps is everything the router wires together. Stores are injected so the
// HTTP layer never reaches for a package-level client.
type Deps struct {
	Log          *zap.Logger
	Projects     ProjectStore
	Testimonials TestimonialStore
	Events       EventStore
	Admins       AdminStore
	Tokens       *utils.TokenIssuer
	Auth         config.AuthConfig
	CORS         config.CORSConfig
	MaxPageSize  int
	Timeout      time.Duration
	Ping         func(context.Context) error
	Registry     *prometheus.Registry
	Now          func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(d.Registry)

	r := gin.New()
	r.Use(
		middleware.RequestLogger(d.Log),
		metrics.Handler(),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(d.CORS.AllowedOrigins),
	)

	l := listing{log: d.Log, maxPageSize: d.MaxPageSize, timeout: d.Timeout}
	projectHandlers := NewProjectHandlers(d.Projects, l)
	testimonialHandlers := NewTestimonialHandlers(d.Testimonials, l)
	analyticsHandlers := NewAnalyticsHandlers(d.Events, l, d.Now)
	authHandlers := NewAuthHandlers(d.Admins, d.Tokens, d.Auth, d.Log)

	r.GET("/healthz", Health(d.Ping, d.Log))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/projects", projectHandlers.List)
		api.GET("/projects/:slug", projectHandlers.Get)
		api.GET("/testimonials", testimonialHandlers.List)
		api.POST("/analytics", analyticsHandlers.TrackEvent)

		api.POST("/auth/login", authHandlers.Login)
		api.POST("/auth/logout", authHandlers.Logout)

		// Dashboard routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(d.Tokens, d.Auth.CookieName, d.Log))
		{
			protected.GET("/auth/session", authHandlers.Session)

			protected.POST("/projects", projectHandlers.Create)
			protected.PUT("/projects/:id", projectHandlers.Update)
			protected.DELETE("/projects/:id", projectHandlers.Delete)

			protected.POST("/testimonials", testimonialHandlers.Create)
			protected.PUT("/testimonials/:id", testimonialHandlers.Update)
			protected.DELETE("/testimonials/:id", testimonialHandlers.Delete)

			protected.GET("/analytics", analyticsHandlers.GetAnalytics)
		}
	}

	return r
}
