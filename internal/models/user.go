package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserNameMinLen = 4
	UserNameMaxLen = 25
	UserBioMaxLen  = 150
	PasswordMinLen = 6
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // argon2id hash, never serialized

	Bio        string `bson:"bio" json:"bio"`
	ProfilePic string `bson:"profile_pic" json:"profilePic"`
	IsActive   bool   `bson:"is_active" json:"isActive"`
}

// PublicProfile is the projection of a user safe to return from the API.
type PublicProfile struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Bio        string             `json:"bio"`
	ProfilePic string             `json:"profilePic"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

// Normalize trims the name and lowercases the email before validation
// and persistence so the unique email index sees one canonical form.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Bio = strings.TrimSpace(u.Bio)
}

// Validate checks the field constraints enforced on every write.
// The password field holds a hash at this point, so its length is not
// checked here; use ValidatePassword on the raw input instead.
func (u *User) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if len(u.Name) < UserNameMinLen {
		return &ValidationError{Field: "name", Message: "Name must be at least 4 characters"}
	}
	if len(u.Name) > UserNameMaxLen {
		return &ValidationError{Field: "name", Message: "Name cannot exceed 25 characters"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !emailPattern.MatchString(u.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email"}
	}
	if len(u.Bio) > UserBioMaxLen {
		return &ValidationError{Field: "bio", Message: "Bio cannot exceed 150 characters"}
	}
	return nil
}

// ValidatePassword checks the raw (pre-hash) password.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if len(password) < PasswordMinLen {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// ValidationError carries the offending field so handlers can surface
// field-level messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
