package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edulive/lecturechat/internal/domain"
)

// Store provides read access to the account table.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates the user table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	log.Info().Str("module", "store").Str("dsn", dsn).Msg("identity store ready")
	return &Store{db: db}, nil
}

// NewStore wraps an already-open gorm handle (tests use an in-memory one).
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID resolves a credential subject to an identity snapshot.
func (s *Store) FindByID(ctx context.Context, id domain.UserID) (domain.Identity, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, domain.ErrIdentityNotFound
		}
		return domain.Identity{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user.Identity(), nil
}

// SeedUser provisions an account if none exists for the phone number.
// Only dev setups call this; production accounts come from the account
// subsystem.
func (s *Store) SeedUser(ctx context.Context, username, phone, email, imageURL, password string) (domain.Identity, error) {
	var existing User
	err := s.db.WithContext(ctx).First(&existing, "phone = ?", phone).Error
	if err == nil {
		return existing.Identity(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Identity{}, fmt.Errorf("failed to check phone: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Phone:        phone,
		Email:        email,
		ImageURL:     imageURL,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return domain.Identity{}, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Str("module", "store").Str("user", user.ID).Str("username", username).Msg("seeded user")
	return user.Identity(), nil
}
