package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tgavazzi/hydromate/internal/auth"
	"github.com/tgavazzi/hydromate/internal/hydration"
)

// SeedTestData resets the database and populates it with demo accounts
// and two months of hydration history.
//
// Behavior:
//  1. Clears `hydration_days`, `user_profiles` and `users`.
//  2. Creates 5 demo accounts (password "Passw0rd!") with profiles and
//     computed goals.
//  3. Backfills ~60 days of intake per user, most days between 40% and
//     110% of the goal, with occasional skipped days.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped
// for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"hydration_days", "user_profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
	}

	log.Println("Cleared existing data")

	genders := []string{hydration.GenderFemale, hydration.GenderMale}
	activities := []string{
		hydration.ActivityNone, hydration.ActivityLight,
		hydration.ActivityModerate, hydration.ActivityHigh,
	}

	for i := 1; i <= 5; i++ {
		email := fmt.Sprintf("demo%d@example.com", i)

		salt, err := auth.GenerateSalt()
		if err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
		user := User{
			Email:          email,
			HashedPassword: auth.HashPassword("Passw0rd!", salt),
			Salt:           salt,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		gender := genders[i%len(genders)]
		activity := activities[i%len(activities)]
		weight := 55.0 + float64(r.Intn(40))
		height := 155.0 + float64(r.Intn(35))
		goal := hydration.RecommendedIntake(weight, height, gender, activity, 0)

		profile := UserProfile{
			UserID:        user.ID,
			Name:          fmt.Sprintf("Demo User %d", i),
			Gender:        gender,
			ActivityLevel: activity,
			Height:        height,
			Weight:        weight,
			Goal:          goal,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		// ~60 days of history, newest first. Roughly one day in eight
		// is skipped entirely.
		today := time.Now()
		for back := 0; back < 60; back++ {
			if r.Intn(8) == 0 {
				continue
			}
			day := today.AddDate(0, 0, -back)
			consumed := goal * (40 + r.Intn(70)) / 100

			row := HydrationDay{
				Date:       day.Format(DateLayout),
				UserID:     user.ID,
				Goal:       goal,
				ValueOfDay: consumed,
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"goal", "value_of_day", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed hydration day: %w", err)
			}
		}
	}
	log.Println("Seeded 5 demo users with hydration history.")

	return nil
}
