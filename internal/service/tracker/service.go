package tracker

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/db"
	svcErr "github.com/tgavazzi/hydromate/internal/errors"
	"github.com/tgavazzi/hydromate/internal/hydration"
	"github.com/tgavazzi/hydromate/internal/repository"
	"github.com/tgavazzi/hydromate/internal/server"
	"github.com/tgavazzi/hydromate/internal/service/profile"
	"github.com/tgavazzi/hydromate/internal/weather"
)

// goalCacheTTL bounds how long a cached goal can outlive the profile
// row it was derived from. Profile writes invalidate eagerly anyway.
const goalCacheTTL = time.Hour

const defaultPageSize = 30
const maxPageSize = 100

// Service implements the hydration tracking endpoints: intake writes,
// day lookups, the history views and the hot-weather reminder.
type Service struct {
	appCtx   *app.AppContext
	ledger   *repository.HydrationRepository
	profiles *repository.ProfileRepository
	weather  *weather.Client
}

// NewService creates the tracker service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, weatherClient *weather.Client) *Service {
	return &Service{
		appCtx:   appCtx,
		ledger:   repository.NewHydrationRepository(appCtx.DB),
		profiles: repository.NewProfileRepository(appCtx.DB),
		weather:  weatherClient,
	}
}

type intakeRequest struct {
	AmountML int `json:"amount_ml" binding:"required"`
}

// AddIntake accumulates consumed ml for today.
//
// Behavior:
//   - The ledger increment is a single atomic statement; concurrent
//     taps cannot lose water.
//   - The current goal is stamped onto the row on every write.
//   - The running total is mirrored in Redis until local midnight.
func (s *Service) AddIntake(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AmountML <= 0 {
		svcErr.Respond(c, svcErr.InvalidArgument("amount_ml must be a positive number"))
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	date := now.Format(db.DateLayout)
	goal := s.currentGoal(ctx, userID)

	total, err := s.ledger.AddIntake(ctx, userID, date, req.AmountML, goal)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	if err := s.appCtx.RedisCache.SetDayTotal(ctx, userID, date, total, untilMidnight(now)); err != nil {
		s.appCtx.Logger.Warn("day total cache write failed", "user_id", userID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"consumed": total,
		"goal":     goal,
	})
}

// Today returns today's (goal, consumed) pair, cache-first.
//
// Cache strategy: read Redis, fall back to the DB on a miss, then
// repopulate with a TTL that expires at midnight when the counter
// naturally resets.
func (s *Service) Today(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	ctx := c.Request.Context()
	now := time.Now()
	date := now.Format(db.DateLayout)

	if consumed, hit, err := s.appCtx.RedisCache.GetDayTotal(ctx, userID, date); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{
			"date":     date,
			"consumed": consumed,
			"goal":     s.currentGoal(ctx, userID),
		})
		return
	}

	goal, consumed, err := s.ledger.GetDay(ctx, userID, date)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if goal == 0 {
		goal = s.currentGoal(ctx, userID)
	}

	if err := s.appCtx.RedisCache.SetDayTotal(ctx, userID, date, consumed, untilMidnight(now)); err != nil {
		s.appCtx.Logger.Warn("day total cache write failed", "user_id", userID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"consumed": consumed,
		"goal":     goal,
	})
}

// Day is a point lookup. Missing days come back as zeros, not 404.
func (s *Service) Day(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	date := c.Param("date")
	if _, err := time.Parse(db.DateLayout, date); err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("date must be YYYY-MM-DD"))
		return
	}

	goal, consumed, err := s.ledger.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"consumed": consumed,
		"goal":     goal,
	})
}

// History returns the bucket sequence and summary for one period.
//
// Behavior:
//   - period defaults to "day", anchor to today.
//   - The bucket list always has the full period length, zero-filled.
//   - next_anchor is null once the anchor reaches the current period;
//     the history view never navigates into the future.
func (s *Service) History(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	period, err := hydration.ParsePeriod(c.DefaultQuery("period", string(hydration.PeriodDay)))
	if err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("period must be day, week, month or year"))
		return
	}

	now := time.Now()
	anchor := now
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.ParseInLocation(db.DateLayout, raw, now.Location())
		if err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("anchor must be YYYY-MM-DD"))
			return
		}
		anchor = parsed
	}

	buckets, err := s.ledger.GetRange(c.Request.Context(), userID, period, anchor)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	resp := gin.H{
		"period":      period,
		"anchor":      anchor.Format(db.DateLayout),
		"buckets":     buckets,
		"summary":     hydration.Summarize(period, buckets),
		"prev_anchor": period.Step(anchor, -1).Format(db.DateLayout),
	}
	if period.CanStepForward(anchor, now) {
		resp["next_anchor"] = period.Step(anchor, 1).Format(db.DateLayout)
	} else {
		resp["next_anchor"] = nil
	}

	c.JSON(http.StatusOK, resp)
}

// ListDays pages through the raw ledger newest-first.
func (s *Service) ListDays(c *gin.Context) {
	userID, ok := server.CurrentUserID(c)
	if !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			svcErr.Respond(c, svcErr.InvalidArgument("limit must be a positive number"))
			return
		}
		limit = min(parsed, maxPageSize)
	}

	var token *string
	if raw := c.Query("cursor"); raw != "" {
		token = &raw
	}

	rows, nextToken, err := s.ledger.ListDays(c.Request.Context(), userID, token, limit)
	if err != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("invalid pagination token"))
		return
	}

	days := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		days = append(days, gin.H{
			"date":     row.Date,
			"consumed": row.ValueOfDay,
			"goal":     row.Goal,
		})
	}

	resp := gin.H{"days": days}
	if nextToken != nil {
		resp["next_cursor"] = *nextToken
	}
	c.JSON(http.StatusOK, resp)
}

// Reminder checks the weather at the given coordinate and suggests a
// drink when it is hot. An unreachable weather service means no
// reminder, not an error.
func (s *Service) Reminder(c *gin.Context) {
	if _, ok := server.CurrentUserID(c); !ok {
		svcErr.Respond(c, svcErr.Unauthorized("no session"))
		return
	}

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		svcErr.Respond(c, svcErr.InvalidArgument("lat and lon must be numeric"))
		return
	}

	tempC, err := s.weather.TemperatureC(c.Request.Context(), lat, lon)
	if err != nil {
		s.appCtx.Logger.Warn("weather lookup failed", "err", err)
		c.JSON(http.StatusOK, gin.H{"reminder": false})
		return
	}

	if !weather.HotWeather(tempC, s.appCtx.Cfg.Weather.MaxCelsius) {
		c.JSON(http.StatusOK, gin.H{"reminder": false, "temperature_c": tempC})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminder":      true,
		"temperature_c": tempC,
		"message":       "The temperature is high. Don't forget to drink water!",
	})
}

// currentGoal resolves the user's effective daily goal, cache-first.
// Failures fall back to the stored profile and, last, the default.
func (s *Service) currentGoal(ctx context.Context, userID uint64) int {
	key := s.appCtx.RedisCache.KeyForGoal(userID)
	if cached, err := s.appCtx.RedisCache.Get(ctx, key); err == nil && cached != "" {
		if goal, err := strconv.Atoi(cached); err == nil && goal > 0 {
			return goal
		}
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.appCtx.Logger.Warn("profile lookup failed, using default goal", "user_id", userID, "err", err)
		return hydration.DefaultGoal
	}

	goal := profile.GoalSettingOf(p).Value
	if err := s.appCtx.RedisCache.Set(ctx, key, goal, goalCacheTTL); err != nil {
		s.appCtx.Logger.Warn("goal cache write failed", "user_id", userID, "err", err)
	}
	return goal
}

// untilMidnight returns the duration to the next local midnight.
func untilMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
