package db

import (
	"time"
)

// User table. Email is the login identifier; passwords are stored as
// base64(SHA-256(password + salt)) with a per-user random salt.
type User struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement"`
	Email          string     `gorm:"uniqueIndex;size:128;not null"`
	HashedPassword string     `gorm:"size:64;not null"`
	Salt           string     `gorm:"size:32;not null"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	DeletedAt      *time.Time // present in the schema, never set
}

// UserProfile is one-to-one with User. ManualGoal marks a user-set
// daily goal that suppresses recomputation until explicitly reset;
// Goal always holds the currently effective goal in ml.
type UserProfile struct {
	UserID        uint64  `gorm:"primaryKey"`
	Name          string  `gorm:"size:128"`
	Gender        string  `gorm:"size:16"`
	ActivityLevel string  `gorm:"size:32"`
	Height        float64 // cm
	Weight        float64 // kg
	ManualGoal    bool    `gorm:"not null;default:false"`
	Goal          int     `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// HydrationDay is the per-user, per-day ledger row.
//
// Composite PK: (Date, UserID)
//   - At most one row per user per day (overwrite guarantee).
//
// Index:
//   - idx_day_user_date(user_id, date) drives the range queries behind
//     the history views.
type HydrationDay struct {
	Date       string    `gorm:"primaryKey;size:10;index:idx_day_user_date,priority:2"` // YYYY-MM-DD
	UserID     uint64    `gorm:"primaryKey;index:idx_day_user_date,priority:1"`
	Goal       int       `gorm:"not null;default:0"`
	ValueOfDay int       `gorm:"column:value_of_day;not null;default:0"` // consumed ml
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// DateLayout is the canonical ledger date format.
const DateLayout = "2006-01-02"
