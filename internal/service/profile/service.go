package profile

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/db"
	svcErr "github.com/tgavazzi/hydromate/internal/errors"
	"github.com/tgavazzi/hydromate/internal/hydration"
	"github.com/tgavazzi/hydromate/internal/repository"
	"github.com/tgavazzi/hydromate/internal/server"
)

// Service implements the profile endpoints: the editable profile
// fields and the daily goal with its manual-override handling.
type Service struct {
	appCtx   *app.AppContext
	profiles *repository.ProfileRepository
}

// NewService creates the profile service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		profiles: repository.NewProfileRepository(appCtx.DB),
	}
}

type profileResponse struct {
	Email         string                `json:"email"`
	Name          string                `json:"name"`
	Gender        string                `json:"gender"`
	ActivityLevel string                `json:"activity_level"`
	Height        float64               `json:"height"`
	Weight        float64               `json:"weight"`
	Goal          hydration.GoalSetting `json:"goal"`
}

// Get returns the profile, zero-defaulted when the user has not filled
// it in yet.
func (s *Service) Get(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	p, err := s.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, s.toResponse(c, p))
}

type updateProfileRequest struct {
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	// Altitude feeds the goal recomputation; unknown defaults to 0.
	Altitude float64 `json:"altitude"`
}

// Update upserts the profile fields. Unless the user has manually set
// a goal, the recommended goal is recomputed from the new fields and
// persisted alongside them.
func (s *Service) Update(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("height, weight and altitude must be numeric"))
		return
	}

	ctx := c.Request.Context()
	existing, err := s.profiles.Get(ctx, userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	p := db.UserProfile{
		UserID:        userID,
		Name:          req.Name,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Height:        req.Height,
		Weight:        req.Weight,
		ManualGoal:    existing.ManualGoal,
		Goal:          existing.Goal,
	}
	if !p.ManualGoal {
		p.Goal = hydration.RecommendedIntake(req.Weight, req.Height, req.Gender, req.ActivityLevel, req.Altitude)
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		svcErr.Respond(c, err)
		return
	}
	s.invalidateGoal(ctx, userID)

	c.JSON(http.StatusOK, s.toResponse(c, p))
}

type setGoalRequest struct {
	Goal int `json:"goal" binding:"required"`
}

// SetGoal stores a manual goal. From here on the calculator is
// bypassed until Recalculate clears the override.
func (s *Service) SetGoal(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Goal <= 0 {
		svcErr.Respond(c, svcErr.InvalidArgument("goal must be a positive number of ml"))
		return
	}

	ctx := c.Request.Context()
	if err := s.profiles.SetGoal(ctx, userID, req.Goal, true); err != nil {
		svcErr.Respond(c, err)
		return
	}
	s.invalidateGoal(ctx, userID)

	c.JSON(http.StatusOK, gin.H{"goal": hydration.ManualGoal(req.Goal)})
}

// Recalculate clears a manual override and recomputes the goal from
// the stored profile. Altitude may be passed as a query parameter;
// when the location is unavailable it is simply omitted.
func (s *Service) Recalculate(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	altitude := 0.0
	if raw := c.Query("altitude"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("altitude must be numeric"))
			return
		}
		altitude = parsed
	}

	ctx := c.Request.Context()
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	goal := hydration.RecommendedIntake(p.Weight, p.Height, p.Gender, p.ActivityLevel, altitude)
	if err := s.profiles.SetGoal(ctx, userID, goal, false); err != nil {
		svcErr.Respond(c, err)
		return
	}
	s.invalidateGoal(ctx, userID)

	c.JSON(http.StatusOK, gin.H{"goal": hydration.ComputedGoal(goal)})
}

func (s *Service) invalidateGoal(ctx context.Context, userID uint64) {
	if err := s.appCtx.RedisCache.InvalidateGoal(ctx, userID); err != nil {
		s.appCtx.Logger.Warn("goal cache invalidation failed", "user_id", userID, "err", err)
	}
}

// toResponse derives the explicit goal setting from the stored
// flag+value pair, falling back to the default goal for blank
// profiles. The account email comes from the session, not the row.
func (s *Service) toResponse(c *gin.Context, p db.UserProfile) profileResponse {
	email, _ := server.CurrentEmail(c)
	return profileResponse{
		Email:         email,
		Name:          p.Name,
		Gender:        p.Gender,
		ActivityLevel: p.ActivityLevel,
		Height:        p.Height,
		Weight:        p.Weight,
		Goal:          GoalSettingOf(p),
	}
}

// GoalSettingOf maps a profile row to its effective goal setting.
func GoalSettingOf(p db.UserProfile) hydration.GoalSetting {
	switch {
	case p.ManualGoal:
		return hydration.ManualGoal(p.Goal)
	case p.Goal > 0:
		return hydration.ComputedGoal(p.Goal)
	default:
		return hydration.ComputedGoal(hydration.DefaultGoal)
	}
}
