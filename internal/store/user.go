// Package store is the identity store the relay consumes: it resolves a
// credential subject id to an account record. Account management itself
// (registration, login, password reset) lives in a separate subsystem that
// writes the same table.
package store

import (
	"time"

	"github.com/edulive/lecturechat/internal/domain"
)

// User is one account row. The schema is the subset the chat relay needs
// from the account subsystem's full user model.
type User struct {
	ID           string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:100;not null" json:"username"`
	Phone        string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	ImageURL     string    `gorm:"size:500;not null" json:"image_url"`
	PasswordHash string    `gorm:"size:60;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Identity projects the row onto the connection-facing identity snapshot.
func (u *User) Identity() domain.Identity {
	return domain.Identity{
		ID:         domain.UserID(u.ID),
		Username:   u.Username,
		ProfilePic: u.ImageURL,
	}
}
