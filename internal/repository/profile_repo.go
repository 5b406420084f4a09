package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tgavazzi/hydromate/internal/db"
)

// ProfileRepository provides data access methods for the one-to-one
// user profile row behind the Profile screen.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// Get returns the profile for a user. A missing row is not an error:
// callers receive a zero-defaulted profile with only UserID set.
func (r *ProfileRepository) Get(ctx context.Context, userID uint64) (db.UserProfile, error) {
	var profile db.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.UserProfile{UserID: userID}, nil
	} else if err != nil {
		return db.UserProfile{UserID: userID}, err
	}
	return profile, nil
}

// Upsert writes the whole profile row in one statement.
//
// Behavior:
//   - If a row exists for user_id → all editable columns are updated.
//   - Otherwise → a new row is inserted.
//   - Primary key on user_id guarantees exactly one row per user.
func (r *ProfileRepository) Upsert(ctx context.Context, profile db.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "gender", "activity_level", "height", "weight",
				"manual_goal", "goal",
			}),
		}).
		Create(&profile).Error
}

// SetGoal stores the effective daily goal and whether it was manually
// set. Works for users with no profile row yet: the row is created
// with defaulted fields.
func (r *ProfileRepository) SetGoal(ctx context.Context, userID uint64, goal int, manual bool) error {
	row := db.UserProfile{UserID: userID, Goal: goal, ManualGoal: manual}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"goal", "manual_goal"}),
		}).
		Create(&row).Error
}
