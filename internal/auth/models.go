package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash"`
	// Role drives RBAC on admin endpoints (admin, user).
	Role string `bson:"role"`
	// EmailNotifications opts the user into an email copy of each
	// notification written to their feed.
	EmailNotifications bool `bson:"email_notifications"`
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Password           string `json:"password"`
	EmailNotifications bool   `json:"email_notifications"`
}

type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
