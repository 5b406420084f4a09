package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/tgavazzi/hydromate/internal/app"
)

// Registrar ties the profile service into the HTTP router.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes behind authentication.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	grp := protected.Group("/profile")
	grp.GET("", svc.Get)
	grp.PUT("", svc.Update)
	grp.PUT("/goal", svc.SetGoal)
	grp.POST("/goal/recalculate", svc.Recalculate)
}
