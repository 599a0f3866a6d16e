// Package store wraps the mongo collections behind small interfaces so the
// resolvers stay testable without a running database.
package store

import (
	"context"
	"errors"

	"blogapi/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

type Users interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	PushPost(ctx context.Context, userID, postID primitive.ObjectID) error
	PullPost(ctx context.Context, userID, postID primitive.ObjectID) error
}

type Posts interface {
	// ByID fetches a post with its creator populated.
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// ByCreator lists a user's posts newest first, without creator population.
	ByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	// Page returns one page of posts, newest first, creator populated.
	// Pages are 1-indexed with a fixed size chosen by the caller.
	Page(ctx context.Context, page, perPage int) ([]*models.Post, error)
}
