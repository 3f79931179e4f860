package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router wires up
type Handlers struct {
	Shift   *handler.ShiftHandler
	Profile *handler.ProfileHandler
	System  *handler.SystemHandler
}

// Config controls cross-cutting router behavior
type Config struct {
	APIVersion  string
	MaxBodySize int64
	CORS        middleware.CORSConfig
}

// DefaultConfig returns the router defaults
func DefaultConfig() Config {
	return Config{
		APIVersion:  "v1",
		MaxBodySize: 1 << 20,
		CORS:        middleware.DefaultCORSConfig(),
	}
}

// Setup registers all middleware and routes on the engine
func Setup(engine *gin.Engine, cfg Config, h Handlers) {
	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.BodyLimit(cfg.MaxBodySize))

	// Probe endpoints live outside the versioned API
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/" + cfg.APIVersion)

	api.GET("/system/info", h.System.GetSystemInfo)

	shifts := api.Group("/shifts")
	{
		shifts.GET("/opening-allowed", h.Shift.CheckOpeningAllowed)
		shifts.GET("/closing-allowed", h.Shift.CheckClosingAllowed)
		shifts.GET("/live-totals", h.Shift.LiveTotals)
		shifts.GET("/current", h.Shift.Current)
		shifts.GET("/open", h.Shift.ListOpen)
		shifts.GET("", h.Shift.List)
		shifts.POST("/open", h.Shift.Open)
		shifts.GET("/:id", h.Shift.GetOpening)
		shifts.POST("/:id/cancel", h.Shift.CancelOpening)
		shifts.POST("/:id/closing-draft", h.Shift.BuildClosingDraft)

		closings := shifts.Group("/closings")
		{
			closings.GET("", h.Shift.ListClosings)
			closings.GET("/:id", h.Shift.GetClosing)
			closings.POST("/:id/submit", h.Shift.SubmitClosing)
			closings.POST("/:id/cancel", h.Shift.CancelClosing)
		}
	}

	profiles := api.Group("/profiles")
	{
		profiles.POST("", h.Profile.Create)
		profiles.GET("", h.Profile.List)
		profiles.GET("/:id", h.Profile.GetByID)
		profiles.PATCH("/:id", h.Profile.Update)
		profiles.DELETE("/:id", h.Profile.Delete)
		profiles.PUT("/:id/windows", h.Profile.SetWindows)
		profiles.POST("/:id/payment-methods", h.Profile.AddPaymentMethod)
		profiles.POST("/:id/users", h.Profile.AuthorizeUser)
		profiles.DELETE("/:id/users/:userID", h.Profile.RevokeUser)
	}
}
