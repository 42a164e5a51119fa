package booking

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docspot/docspot-api/internal/models"
)

// MongoStore backs the allocator with the appointments collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) CountSlot(ctx context.Context, doctorID primitive.ObjectID, date, slot string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"doctorId": doctorID, "date": date, "slot": slot})
}

func (s *MongoStore) Insert(ctx context.Context, apt *models.Appointment) error {
	res, err := s.col.InsertOne(ctx, apt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		apt.ID = oid
	}
	return nil
}
