package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docspot/docspot-api/internal/models"
)

func TestCancelOwnFilterBindsPatient(t *testing.T) {
	appointmentID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()

	filter := cancelOwnFilter(appointmentID, patientID)

	if len(filter) != 2 {
		t.Fatalf("got %d constraints, want exactly _id and patientId: %v", len(filter), filter)
	}
	if got := filter["_id"]; got != appointmentID {
		t.Errorf("_id = %v, want %v", got, appointmentID)
	}
	if got := filter["patientId"]; got != patientID {
		t.Errorf("patientId = %v, want %v", got, patientID)
	}
}

func TestCancelOwnFilterRejectsOtherPatient(t *testing.T) {
	appointmentID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()

	stored := bson.M{"_id": appointmentID, "patientId": owner}
	filter := cancelOwnFilter(appointmentID, intruder)

	// The same appointment id must not match under a different patient id.
	if stored["_id"] == filter["_id"] && stored["patientId"] == filter["patientId"] {
		t.Fatal("filter for another patient must not match the stored appointment")
	}
}

func TestCancelUpdateSetsCancelled(t *testing.T) {
	update := statusSet(models.StatusCancelled)

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("update is not a $set: %v", update)
	}
	if set["status"] != models.StatusCancelled {
		t.Errorf("status = %v, want %q", set["status"], models.StatusCancelled)
	}
	if len(set) != 1 {
		t.Errorf("cancel must touch only status, got %v", set)
	}
}
