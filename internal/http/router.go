package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/agentroute/backend/internal/config"
	"github.com/agentroute/backend/internal/db"
	"github.com/agentroute/backend/internal/geocode"
	"github.com/agentroute/backend/internal/http/handlers"
	"github.com/agentroute/backend/internal/http/middleware"

	_ "github.com/agentroute/backend/docs"
)

func Router(cfg config.Config, store *db.Store, geocoder geocode.Geocoder, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Geocoder:  geocoder,
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
		DayStart:  cfg.DayStart,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/clients", h.CreateClient)
		api.GET("/clients", h.ListClients)
		api.GET("/clients/:id", h.GetClient)
		api.PUT("/clients/:id", h.UpdateClient)
		api.DELETE("/clients/:id", h.DeleteClient)

		api.POST("/appointments", h.CreateAppointment)
		api.GET("/appointments", h.ListAppointments)
		api.GET("/appointments/:id", h.GetAppointment)
		api.PUT("/appointments/:id", h.UpdateAppointment)
		api.PUT("/appointments/:id/status", h.UpdateHouseStatus)
		api.DELETE("/appointments/:id", h.DeleteAppointment)

		api.POST("/notes", h.CreateHouseNote)
		api.GET("/notes", h.ListHouseNotes)
		api.GET("/notes/:id", h.GetHouseNote)
		api.PUT("/notes/:id", h.UpdateHouseNote)
		api.DELETE("/notes/:id", h.DeleteHouseNote)

		api.GET("/priorities", h.GetPriorities)
		api.PUT("/priorities", h.UpdatePriorities)
		api.POST("/optimize-route", h.OptimizeRoute)
		api.GET("/dashboard/stats", h.DashboardStats)

		api.GET("/geocode/search", h.GeocodeSearch)
		api.POST("/geocode/validate", h.GeocodeValidate)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/import", h.Import)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
