// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"airporter/internal/http/handlers"
	"airporter/internal/http/middleware"
	"airporter/internal/modules/wizard"
)

func NewRouter(wizardSvc *wizard.Service, logger *zap.Logger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	)

	transfer := handlers.NewTransferHandler(wizardSvc)

	api := r.Group("/api/transfer")
	{
		api.POST("/sessions", transfer.Begin)
		api.GET("/sessions/:id", transfer.Get)
		api.PUT("/sessions/:id/itinerary", transfer.UpdateItinerary)
		api.POST("/sessions/:id/next", transfer.Next)
		api.POST("/sessions/:id/back", transfer.Back)
		api.POST("/sessions/:id/driver", transfer.SelectDriver)
		api.PUT("/sessions/:id/vehicle-type", transfer.ChangeVehicleType)
		api.PUT("/sessions/:id/contact", transfer.SetContact)
		api.PUT("/sessions/:id/payment", transfer.SetPaymentMethod)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
