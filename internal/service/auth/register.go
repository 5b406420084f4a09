package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/mail"
)

// Registrar ties the auth service into the HTTP router.
type Registrar struct {
	appCtx *app.AppContext
	mailer mail.Mailer
}

// NewRegistrar creates a new Registrar for the auth service.
func NewRegistrar(appCtx *app.AppContext, mailer mail.Mailer) *Registrar {
	return &Registrar{appCtx: appCtx, mailer: mailer}
}

// Register attaches the auth routes. All of them are public.
func (r *Registrar) Register(public, protected *gin.RouterGroup) {
	svc := NewService(r.appCtx, r.mailer)

	grp := public.Group("/auth")
	grp.POST("/register", svc.Register)
	grp.POST("/login", svc.Login)
	grp.POST("/forgot-password", svc.ForgotPassword)
	grp.POST("/reset-password", svc.ResetPassword)
}
