package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docspot/docspot-api/internal/booking"
	"github.com/docspot/docspot-api/internal/db"
	"github.com/docspot/docspot-api/internal/services"
)

// queryTimeout bounds every database call made by a handler.
const queryTimeout = 5 * time.Second

// Handler carries the shared dependencies of every route handler.
type Handler struct {
	DB        *mongo.Database
	Mailer    *services.Mailer
	Denylist  *services.TokenDenylist
	Allocator *booking.Allocator

	// secureCookies marks session cookies Secure in production.
	secureCookies bool
}

func NewHandler(database *mongo.Database, mailer *services.Mailer, denylist *services.TokenDenylist, secureCookies bool) *Handler {
	return &Handler{
		DB:            database,
		Mailer:        mailer,
		Denylist:      denylist,
		Allocator:     booking.NewAllocator(booking.NewMongoStore(database.Collection(db.AppointmentsCollection))),
		secureCookies: secureCookies,
	}
}

func (h *Handler) users() *mongo.Collection {
	return h.DB.Collection(db.UsersCollection)
}

func (h *Handler) doctors() *mongo.Collection {
	return h.DB.Collection(db.DoctorsCollection)
}

func (h *Handler) appointments() *mongo.Collection {
	return h.DB.Collection(db.AppointmentsCollection)
}

// mongoAfter makes FindOneAndUpdate return the post-update document.
func mongoAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// statusSet is the update document that overwrites an appointment's status.
func statusSet(status string) bson.M {
	return bson.M{"$set": bson.M{"status": status}}
}
