package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tgavazzi/hydromate/internal/db"
	"github.com/tgavazzi/hydromate/internal/hydration"
	"github.com/tgavazzi/hydromate/internal/utils/pagination"
)

// HydrationRepository provides data access methods for the per-user,
// per-day hydration ledger.
type HydrationRepository struct {
	db *gorm.DB
}

// NewHydrationRepository creates a new repository bound to the given DB connection.
func NewHydrationRepository(database *gorm.DB) *HydrationRepository {
	return &HydrationRepository{db: database}
}

// UpsertDay writes a ledger row with replace-on-conflict semantics.
//
// Behavior:
//   - If (date, user_id) exists → goal and consumed are overwritten,
//     never accumulated.
//   - Otherwise → a new row is inserted.
//
// Callers that want to accumulate must use AddIntake.
func (r *HydrationRepository) UpsertDay(ctx context.Context, userID uint64, date string, goal, consumed int) error {
	row := db.HydrationDay{
		Date:       date,
		UserID:     userID,
		Goal:       goal,
		ValueOfDay: consumed,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"goal", "value_of_day"}),
		}).
		Create(&row).Error
}

// AddIntake durably accumulates consumed ml for a day in a single
// atomic statement, so two concurrent taps can never lose an
// increment. The day's goal is refreshed on every write.
//
// Returns the new consumed total for the day.
func (r *HydrationRepository) AddIntake(ctx context.Context, userID uint64, date string, amountML, goal int) (int, error) {
	row := db.HydrationDay{
		Date:       date,
		UserID:     userID,
		Goal:       goal,
		ValueOfDay: amountML,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value_of_day": gorm.Expr("value_of_day + ?", amountML),
				"goal":         goal,
			}),
		}).
		Create(&row).Error
	if err != nil {
		return 0, err
	}

	_, consumed, err := r.GetDay(ctx, userID, date)
	return consumed, err
}

// GetDay is a point lookup. A missing day is not an error: both values
// come back zero.
func (r *HydrationRepository) GetDay(ctx context.Context, userID uint64, date string) (goal, consumed int, err error) {
	var row db.HydrationDay
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, nil
	} else if err != nil {
		return 0, 0, err
	}
	return row.Goal, row.ValueOfDay, nil
}

// GetRange returns the full bucket sequence for the period containing
// anchor.
//
// Behavior:
//   - The result always has exactly the period's bucket count; days
//     with no record contribute a zero-filled bucket.
//   - week buckets are indexed 0..6, Monday-first; month buckets 1..N;
//     year buckets 1..12 with goal/consumed summed per month.
func (r *HydrationRepository) GetRange(ctx context.Context, userID uint64, period hydration.Period, anchor time.Time) ([]hydration.Bucket, error) {
	start, end := period.Range(anchor)
	buckets := period.EmptyBuckets(anchor)

	var rows []db.HydrationDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?",
			userID, start.Format(db.DateLayout), end.Format(db.DateLayout)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		day, err := time.ParseInLocation(db.DateLayout, row.Date, anchor.Location())
		if err != nil {
			continue
		}
		slot := period.BucketFor(anchor, day)
		if slot < 0 {
			continue
		}
		if period == hydration.PeriodYear {
			buckets[slot].Goal += row.Goal
			buckets[slot].Consumed += row.ValueOfDay
		} else {
			buckets[slot].Goal = row.Goal
			buckets[slot].Consumed = row.ValueOfDay
		}
	}

	return buckets, nil
}

// ListDays pages through a user's ledger newest-first.
//
// Behavior:
//   - Ordered by date DESC.
//   - Supports cursor-based pagination via paginationToken: the cursor
//     records the last returned date.
func (r *HydrationRepository) ListDays(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]db.HydrationDay, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit + 1)

	if cursor.Date != "" {
		query = query.Where("date < ?", cursor.Date)
	}

	var rows []db.HydrationDay
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(rows) > limit {
		last := rows[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{Date: last.Date})
		nextToken = &token
		rows = rows[:limit]
	}

	return rows, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
