package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tgavazzi/hydromate/internal/auth"
	"github.com/tgavazzi/hydromate/internal/db"
)

// CredentialRepository provides data access methods for user accounts.
// It owns the salted-hash password scheme; callers only ever see
// plaintext passwords going in and booleans coming out.
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new repository bound to the given DB connection.
func NewCredentialRepository(database *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: database}
}

// IsEmailPresent reports whether a user row exists for the email.
// A miss is not an error.
func (r *CredentialRepository) IsEmailPresent(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// InsertUser creates a user with a fresh random salt.
//
// Behavior:
//   - Generates a 16-byte salt, stores base64(SHA-256(password + salt)).
//   - Returns the new row id.
//   - Returns -1 with the driver error on a duplicate email; callers
//     are expected to pre-check with IsEmailPresent.
func (r *CredentialRepository) InsertUser(ctx context.Context, email, password string) (int64, error) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		return -1, err
	}

	user := db.User{
		Email:          email,
		HashedPassword: auth.HashPassword(password, salt),
		Salt:           salt,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return -1, err
	}
	return int64(user.ID), nil
}

// VerifyLogin recomputes the salted hash for the stored salt and
// compares. An unknown email or a mismatch both return false, nil.
func (r *CredentialRepository) VerifyLogin(ctx context.Context, email, password string) (bool, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return auth.VerifyPassword(password, user.Salt, user.HashedPassword), nil
}

// UpdatePassword overwrites the stored hash and salt for the email.
// A new salt is generated; the old one is never reused.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, email, newPassword string) error {
	salt, err := auth.GenerateSalt()
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"hashed_password": auth.HashPassword(newPassword, salt),
			"salt":            salt,
		}).Error
}

// UserIDByEmail resolves an email to its user id. A miss is reported
// as found=false, not an error.
func (r *CredentialRepository) UserIDByEmail(ctx context.Context, email string) (uint64, bool, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Select("id").
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}
