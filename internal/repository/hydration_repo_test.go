package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgavazzi/hydromate/internal/db"
	"github.com/tgavazzi/hydromate/internal/hydration"
	"github.com/tgavazzi/hydromate/internal/repository"
)

func TestAddIntakeAccumulates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	total, err := repo.AddIntake(ctx, 1, "2026-08-28", 250, 3000)
	require.NoError(t, err)
	assert.Equal(t, 250, total)

	total, err = repo.AddIntake(ctx, 1, "2026-08-28", 500, 3000)
	require.NoError(t, err)
	assert.Equal(t, 750, total)

	// Other users and other days are untouched.
	goal, consumed, err := repo.GetDay(ctx, 2, "2026-08-28")
	require.NoError(t, err)
	assert.Zero(t, goal)
	assert.Zero(t, consumed)
}

func TestAddIntakeRefreshesGoal(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	_, err := repo.AddIntake(ctx, 1, "2026-08-28", 250, 3000)
	require.NoError(t, err)
	_, err = repo.AddIntake(ctx, 1, "2026-08-28", 250, 3500)
	require.NoError(t, err)

	goal, consumed, err := repo.GetDay(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 3500, goal)
	assert.Equal(t, 500, consumed)
}

func TestAddIntakeInterleavedUsers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	for i := 0; i < 10; i++ {
		_, err := repo.AddIntake(ctx, 1, "2026-08-28", 100, 3000)
		require.NoError(t, err)
		_, err = repo.AddIntake(ctx, 2, "2026-08-28", 50, 2500)
		require.NoError(t, err)
	}

	_, consumed, err := repo.GetDay(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 1000, consumed)

	_, consumed, err = repo.GetDay(ctx, 2, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 500, consumed)
}

func TestUpsertDayReplaces(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-28", 3000, 1200))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-28", 3200, 900))

	goal, consumed, err := repo.GetDay(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 3200, goal)
	assert.Equal(t, 900, consumed) // replaced, not accumulated
}

func TestUpsertDayIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewHydrationRepository(dbase)

	// Repeating the exact same write changes nothing and adds no rows.
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-28", 3000, 1200))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-28", 3000, 1200))

	goal, consumed, err := repo.GetDay(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 3000, goal)
	assert.Equal(t, 1200, consumed)

	var count int64
	require.NoError(t, dbase.Model(&db.HydrationDay{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetDayMissing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	goal, consumed, err := repo.GetDay(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.Zero(t, goal)
	assert.Zero(t, consumed)
}

func TestGetRangeWeek(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	// 2026-08-24 is a Monday, 2026-08-28 a Friday.
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-24", 3000, 2100))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-28", 3000, 1400))
	// Outside the week.
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-08-23", 3000, 9999))
	// Another user inside the week.
	require.NoError(t, repo.UpsertDay(ctx, 2, "2026-08-25", 3000, 9999))

	anchor := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)
	buckets, err := repo.GetRange(ctx, 1, hydration.PeriodWeek, anchor)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	assert.Equal(t, 2100, buckets[0].Consumed) // Monday
	assert.Equal(t, 1400, buckets[4].Consumed) // Friday
	for _, slot := range []int{1, 2, 3, 5, 6} {
		assert.Zero(t, buckets[slot].Consumed, "slot %d", slot)
		assert.Zero(t, buckets[slot].Goal, "slot %d", slot)
	}
}

func TestGetRangeMonth(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	require.NoError(t, repo.UpsertDay(ctx, 1, "2024-02-01", 3000, 1000))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2024-02-29", 3000, 2000))

	anchor := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	buckets, err := repo.GetRange(ctx, 1, hydration.PeriodMonth, anchor)
	require.NoError(t, err)
	require.Len(t, buckets, 29)

	assert.Equal(t, 1, buckets[0].Index)
	assert.Equal(t, 1000, buckets[0].Consumed)
	assert.Equal(t, 29, buckets[28].Index)
	assert.Equal(t, 2000, buckets[28].Consumed)
}

func TestGetRangeYearSumsMonths(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-03-01", 3000, 1000))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-03-15", 3000, 1500))
	require.NoError(t, repo.UpsertDay(ctx, 1, "2026-07-04", 3200, 2000))

	anchor := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	buckets, err := repo.GetRange(ctx, 1, hydration.PeriodYear, anchor)
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	assert.Equal(t, 2500, buckets[2].Consumed) // March summed
	assert.Equal(t, 6000, buckets[2].Goal)
	assert.Equal(t, 2000, buckets[6].Consumed) // July
	assert.Zero(t, buckets[0].Consumed)
}

func TestListDaysPagination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	days := []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"}
	for _, d := range days {
		require.NoError(t, repo.UpsertDay(ctx, 1, d, 3000, 1000))
	}

	// First page, newest first.
	rows, next, err := repo.ListDays(ctx, 1, nil, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, next)
	assert.Equal(t, "2026-08-28", rows[0].Date)
	assert.Equal(t, "2026-08-27", rows[1].Date)

	// Second page continues past the cursor.
	rows, next, err = repo.ListDays(ctx, 1, next, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, next)
	assert.Equal(t, "2026-08-26", rows[0].Date)

	// Final page has no next token.
	rows, next, err = repo.ListDays(ctx, 1, next, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-24", rows[0].Date)
	assert.Nil(t, next)
}

func TestListDaysBadToken(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewHydrationRepository(setupTestDB(t))

	bad := "%%%"
	_, _, err := repo.ListDays(ctx, 1, &bad, 10)
	assert.Error(t, err)
}
