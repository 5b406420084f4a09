package tracker

import (
	"github.com/gin-gonic/gin"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/weather"
)

// Registrar ties the tracker service into the HTTP router.
type Registrar struct {
	appCtx  *app.AppContext
	weather *weather.Client
}

// NewRegistrar creates a new Registrar for the tracker service.
func NewRegistrar(appCtx *app.AppContext, weatherClient *weather.Client) *Registrar {
	return &Registrar{appCtx: appCtx, weather: weatherClient}
}

// Register attaches the hydration routes behind authentication.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	svc := NewService(r.appCtx, r.weather)

	grp := protected.Group("/hydration")
	grp.POST("/intake", svc.AddIntake)
	grp.GET("/today", svc.Today)
	grp.GET("/day/:date", svc.Day)
	grp.GET("/history", svc.History)
	grp.GET("/days", svc.ListDays)
	grp.GET("/reminder", svc.Reminder)
}
