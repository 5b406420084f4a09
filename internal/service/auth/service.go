package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tgavazzi/hydromate/internal/app"
	authcore "github.com/tgavazzi/hydromate/internal/auth"
	svcErr "github.com/tgavazzi/hydromate/internal/errors"
	"github.com/tgavazzi/hydromate/internal/mail"
	"github.com/tgavazzi/hydromate/internal/repository"
)

// resetCodeTTL matches the 60-second countdown shown to the user while
// they wait for the reset code.
const resetCodeTTL = time.Minute

// Service implements the account endpoints: registration, login and
// the password reset flow.
type Service struct {
	appCtx *app.AppContext
	creds  *repository.CredentialRepository
	mailer mail.Mailer
}

// NewService creates the auth service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, mailer mail.Mailer) *Service {
	return &Service{
		appCtx: appCtx,
		creds:  repository.NewCredentialRepository(appCtx.DB),
		mailer: mailer,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns a session token.
//
// Behavior:
//   - Email format and password policy are validated first.
//   - Duplicate emails are rejected with 409 before touching the
//     insert path, so the unique constraint never fires in practice.
func (s *Service) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("email and password are required"))
		return
	}

	if !authcore.IsValidEmail(req.Email) {
		svcErr.Respond(c, svcErr.InvalidArgument("email is not valid"))
		return
	}
	if msg := authcore.ValidatePassword(req.Password); msg != "" {
		svcErr.Respond(c, svcErr.InvalidArgument(msg))
		return
	}

	ctx := c.Request.Context()
	present, err := s.creds.IsEmailPresent(ctx, req.Email)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if present {
		svcErr.Respond(c, svcErr.AlreadyExists("email already exists, please log in"))
		return
	}

	id, err := s.creds.InsertUser(ctx, req.Email, req.Password)
	if err != nil || id < 0 {
		s.appCtx.Logger.Error("insert user failed", "err", err)
		svcErr.Respond(c, svcErr.AlreadyExists("email already exists, please log in"))
		return
	}

	token, err := s.issueToken(uint64(id), req.Email)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	s.appCtx.Logger.Info("user registered", "user_id", id)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": id, "email": req.Email},
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("email and password are required"))
		return
	}

	ctx := c.Request.Context()
	ok, err := s.creds.VerifyLogin(ctx, req.Email, req.Password)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("invalid credentials"))
		return
	}

	userID, found, err := s.creds.UserIDByEmail(ctx, req.Email)
	if err != nil || !found {
		svcErr.Respond(c, svcErr.Unauthorized("invalid credentials"))
		return
	}

	token, err := s.issueToken(userID, req.Email)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": userID, "email": req.Email},
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword issues a short-lived reset code when the email is
// known. The response is 202 either way, so the endpoint cannot be
// used to probe which emails exist.
func (s *Service) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("email is required"))
		return
	}

	ctx := c.Request.Context()
	present, err := s.creds.IsEmailPresent(ctx, req.Email)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	if present {
		code, err := generateResetCode()
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		key := s.appCtx.RedisCache.KeyForResetCode(req.Email)
		if err := s.appCtx.RedisCache.Set(ctx, key, code, resetCodeTTL); err != nil {
			svcErr.Respond(c, err)
			return
		}
		if err := s.mailer.SendResetCode(ctx, req.Email, code); err != nil {
			s.appCtx.Logger.Error("reset code delivery failed", "err", err)
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "if the email exists, a reset code was sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword verifies a reset code and rotates the password (and
// salt). Codes are single-use: the key is deleted on success.
func (s *Service) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("email, code and new_password are required"))
		return
	}

	if msg := authcore.ValidatePassword(req.NewPassword); msg != "" {
		svcErr.Respond(c, svcErr.InvalidArgument(msg))
		return
	}

	ctx := c.Request.Context()
	key := s.appCtx.RedisCache.KeyForResetCode(req.Email)
	stored, err := s.appCtx.RedisCache.Get(ctx, key)
	if err != nil && !errors.Is(err, goredis.Nil) {
		svcErr.Respond(c, err)
		return
	}
	if stored == "" || stored != req.Code {
		svcErr.Respond(c, svcErr.InvalidArgument("invalid or expired reset code"))
		return
	}

	if err := s.creds.UpdatePassword(ctx, req.Email, req.NewPassword); err != nil {
		svcErr.Respond(c, err)
		return
	}
	_ = s.appCtx.RedisCache.Del(ctx, key)

	s.appCtx.Logger.Info("password reset completed")
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (s *Service) issueToken(userID uint64, email string) (string, error) {
	return authcore.NewToken(
		[]byte(s.appCtx.Cfg.Auth.JWTSecret),
		userID, email,
		s.appCtx.Cfg.Auth.TokenTTL,
	)
}

// generateResetCode returns a random 6-digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
