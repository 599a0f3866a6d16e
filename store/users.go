package store

import (
	"context"

	"blogapi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUsers struct {
	coll *mongo.Collection
}

func NewUsers(coll *mongo.Collection) Users {
	return &mongoUsers{coll: coll}
}

func (s *mongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *mongoUsers) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) PushPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"posts": postID}})
	return err
}

func (s *mongoUsers) PullPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"posts": postID}})
	return err
}
