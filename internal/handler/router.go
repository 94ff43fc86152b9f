package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/allinone/manager/internal/middleware"
	"github.com/allinone/manager/internal/model"
	"github.com/allinone/manager/internal/pkg/response"
)

type RouterDeps struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Users         *UserHandler
	Apps          *AppHandler
	Notifications *NotificationHandler

	JWTSecret   []byte
	CORSOrigins []string

	// Dev switches stack traces and internal error details into response
	// bodies.
	Dev bool

	// OpenNotifications leaves the notification routes unauthenticated for
	// older front-end builds that never send a token.
	OpenNotifications bool

	LoginRateLimitWindow time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(deps.Dev))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	if deps.Dev {
		router.Use(func(c *gin.Context) {
			c.Set(contextExposeErrorsKey, true)
			c.Next()
		})
	}
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not Found")
	})

	router.GET("/health", deps.Health.Health)

	api := router.Group("/api")
	api.POST("/auth/login", middleware.RateLimit(deps.LoginRateLimitWindow), deps.Auth.Login)

	users := api.Group("/users")
	users.Use(middleware.JWTAuth(deps.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	users.GET("", deps.Users.List)
	users.POST("", deps.Users.Create)
	users.GET("/:id", deps.Users.Get)
	users.PUT("/:id", deps.Users.Update)
	users.DELETE("/:id", deps.Users.Delete)

	apps := api.Group("/apps")
	apps.Use(middleware.JWTAuth(deps.JWTSecret), middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	apps.GET("", deps.Apps.List)
	apps.POST("", deps.Apps.Create)
	apps.GET("/:id", deps.Apps.Get)
	apps.PUT("/:id", deps.Apps.Update)
	apps.DELETE("/:id", deps.Apps.Delete)

	notifications := api.Group("/notifications")
	if !deps.OpenNotifications {
		notifications.Use(middleware.JWTAuth(deps.JWTSecret))
	}
	notifications.GET("", deps.Notifications.List)
	notifications.POST("", deps.Notifications.Create)
	notifications.PUT("/mark-all-read", deps.Notifications.MarkAllRead)
	notifications.PUT("/:id/read", deps.Notifications.MarkRead)
	notifications.DELETE("/:id", deps.Notifications.Delete)

	return router
}
