// Package store holds the persistence layer for users and posts.
// Handlers depend on the interfaces so tests can swap in fakes; the
// Mongo implementations are the only ones used in production.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell-backend/internal/models"
)

var (
	// ErrNotFound is returned when a document id resolves to nothing.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateEmail is returned when a write collides with the
	// unique email index.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ProfileUpdate carries a profile edit. Name and Email are always
// replaced; Bio and ProfilePic are applied only when non-nil so an
// omitted field keeps its stored value.
type ProfileUpdate struct {
	Name       string
	Email      string
	Bio        *string
	ProfilePic *string
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailTakenByOther reports whether email belongs to a user other than selfID.
	EmailTakenByOther(ctx context.Context, email string, selfID primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// List returns one page of posts newest-first plus the total count.
	List(ctx context.Context, page, limit int) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
