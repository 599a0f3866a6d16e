package graph

import (
	"context"
	"sort"
	"time"

	"blogapi/models"
	"blogapi/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the mongo-backed stores.

type fakeUsers struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) ByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) Insert(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Status = status
	return nil
}

func (f *fakeUsers) PushPost(_ context.Context, userID, postID primitive.ObjectID) error {
	if user, ok := f.users[userID]; ok {
		user.Posts = append(user.Posts, postID)
	}
	return nil
}

func (f *fakeUsers) PullPost(_ context.Context, userID, postID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return nil
	}
	kept := user.Posts[:0]
	for _, id := range user.Posts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	user.Posts = kept
	return nil
}

type fakePosts struct {
	posts map[primitive.ObjectID]*models.Post
	users *fakeUsers
}

func newFakePosts(users *fakeUsers) *fakePosts {
	return &fakePosts{posts: make(map[primitive.ObjectID]*models.Post), users: users}
}

func (f *fakePosts) ByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *post
	if creator, err := f.users.ByID(ctx, post.CreatorID); err == nil {
		copied.Creator = creator
	}
	return &copied, nil
}

func (f *fakePosts) ByCreator(_ context.Context, creatorID primitive.ObjectID) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range f.posts {
		if post.CreatorID == creatorID {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sortNewestFirst(posts)
	return posts, nil
}

func (f *fakePosts) Insert(_ context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	copied := *post
	copied.Creator = nil
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePosts) Update(_ context.Context, post *models.Post) error {
	stored, ok := f.posts[post.ID]
	if !ok {
		return store.ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	stored.Title = post.Title
	stored.Content = post.Content
	stored.ImageURL = post.ImageURL
	stored.UpdatedAt = post.UpdatedAt
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) Count(_ context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakePosts) Page(ctx context.Context, page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	all := make([]*models.Post, 0, len(f.posts))
	for _, post := range f.posts {
		copied := *post
		if creator, err := f.users.ByID(ctx, post.CreatorID); err == nil {
			copied.Creator = creator
		}
		all = append(all, &copied)
	}
	sortNewestFirst(all)

	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func sortNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
}
