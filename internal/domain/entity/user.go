package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that issues invoices
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:40;not null" json:"name"`
	Login     string    `gorm:"size:40;uniqueIndex;not null" json:"login"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CreatedBy" json:"-"`
}

// BeforeCreate generates a UUID and normalises the login before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Login = NormalizeLogin(u.Login)
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NormalizeLogin is the stored form of a login. Logins compare case-insensitively.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
