package graph

import (
	"context"
	"errors"
	"net/http"

	"blogapi/apperr"
	"blogapi/auth"
	"blogapi/images"
	"blogapi/models"
	"blogapi/store"
	"blogapi/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const perPage = 2

const bcryptCost = 12

// Resolver implements one method per GraphQL operation. Every method follows
// the same shape: authorization check, input validation, store call, response
// shaping. Failures are raised as *apperr.Error and shaped at the boundary.
type Resolver struct {
	Users     store.Users
	Posts     store.Posts
	Tokens    *auth.TokenService
	ImagesDir string
}

type UserInput struct {
	Email    string
	Password string
	Name     string
}

type PostInput struct {
	Title    string
	Content  string
	ImageURL *string
}

type AuthData struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type PostsData struct {
	TotalPosts int64          `json:"totalPosts"`
	Posts      []*models.Post `json:"posts"`
}

type StatusData struct {
	Status string `json:"status"`
}

var errUnauthenticated = apperr.New("User unauthenticated", http.StatusUnauthorized)

// caller returns the authenticated user's id or an unauthenticated error.
func (r *Resolver) caller(ctx context.Context) (primitive.ObjectID, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return primitive.NilObjectID, errUnauthenticated
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, errUnauthenticated
	}
	return id, nil
}

func (r *Resolver) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	email := validation.NormalizeEmail(input.Email)

	existing, err := r.Users.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New("User already exists!", http.StatusConflict)
	}

	if errs := validation.User(email, input.Password, input.Name); len(errs) > 0 {
		return nil, apperr.WithData("Invalid input", http.StatusUnprocessableEntity, errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     input.Name,
		Status:   models.DefaultStatus,
		Posts:    []primitive.ObjectID{},
	}
	if err := r.Users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Resolver) Login(ctx context.Context, email, password string) (*AuthData, error) {
	user, err := r.Users.ByEmail(ctx, validation.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New("User could not be found", http.StatusUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New("Password incorrect", http.StatusUnauthorized)
	}

	token, err := r.Tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthData{UserID: user.ID.Hex(), Token: token}, nil
}

func (r *Resolver) CreatePost(ctx context.Context, input PostInput) (*models.Post, error) {
	callerID, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}

	errs := validation.Post(input.Title, input.Content)
	if input.ImageURL == nil || *input.ImageURL == "" {
		errs = append(errs, apperr.New("Image is required", http.StatusUnprocessableEntity))
	}
	if len(errs) > 0 {
		return nil, apperr.WithData("Creation of post failed", http.StatusUnprocessableEntity, errs)
	}

	user, err := r.Users.ByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New("User not found", http.StatusUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  *input.ImageURL,
		CreatorID: callerID,
	}
	if err := r.Posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	if err := r.Users.PushPost(ctx, callerID, post.ID); err != nil {
		return nil, err
	}

	post.Creator = user
	return post, nil
}

func (r *Resolver) GetPosts(ctx context.Context, page int) (*PostsData, error) {
	if _, err := r.caller(ctx); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	total, err := r.Posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := r.Posts.Page(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return &PostsData{TotalPosts: total, Posts: posts}, nil
}

func (r *Resolver) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if _, err := r.caller(ctx); err != nil {
		return nil, err
	}
	return r.postByID(ctx, id)
}

func (r *Resolver) UpdatePost(ctx context.Context, id string, input PostInput) (*models.Post, error) {
	callerID, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}

	if errs := validation.Post(input.Title, input.Content); len(errs) > 0 {
		return nil, apperr.WithData("Creation of post failed", http.StatusUnprocessableEntity, errs)
	}

	post, err := r.postByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != callerID {
		return nil, apperr.New("User unauthorized!", http.StatusForbidden)
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.ImageURL != nil && *input.ImageURL != "" {
		post.ImageURL = *input.ImageURL
	}
	if err := r.Posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Resolver) DeletePost(ctx context.Context, id string) (bool, error) {
	callerID, err := r.caller(ctx)
	if err != nil {
		return false, err
	}

	post, err := r.postByID(ctx, id)
	if err != nil {
		return false, err
	}
	if post.CreatorID != callerID {
		return false, apperr.New("User unauthorized!", http.StatusForbidden)
	}

	images.Remove(r.ImagesDir, post.ImageURL)

	if err := r.Posts.Delete(ctx, post.ID); err != nil {
		return false, err
	}
	if err := r.Users.PullPost(ctx, callerID, post.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) GetUserStatus(ctx context.Context) (*StatusData, error) {
	callerID, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.ByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New("User not found!", http.StatusNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &StatusData{Status: user.Status}, nil
}

func (r *Resolver) UpdateStatus(ctx context.Context, status string) (*StatusData, error) {
	callerID, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}

	err = r.Users.SetStatus(ctx, callerID, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New("User not found!", http.StatusNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &StatusData{Status: status}, nil
}

func (r *Resolver) postByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New("Post not found!", http.StatusNotFound)
	}
	post, err := r.Posts.ByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New("Post not found!", http.StatusNotFound)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
