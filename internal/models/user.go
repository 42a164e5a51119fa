package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User is a patient or admin account. Doctors live in their own collection.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Password string             `bson:"password" json:"-"` // Hide hash from JSON responses
	Gender   string             `bson:"gender" json:"gender" validate:"required,oneof=male female other"`
	Age      int                `bson:"age" json:"age" validate:"min=0,max=120"`
	Phone    string             `bson:"phone" json:"phone" validate:"required,len=10,numeric"`
	Role     string             `bson:"role" json:"role" validate:"required,oneof=admin patient"`
}
