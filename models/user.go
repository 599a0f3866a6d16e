package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const DefaultStatus = "I am new!"

type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"password"`
	Name     string               `bson:"name" json:"name"`
	Status   string               `bson:"status" json:"status"`
	Posts    []primitive.ObjectID `bson:"posts" json:"posts"`
}
