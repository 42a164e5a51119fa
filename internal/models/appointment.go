package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SlotMorning = "morning"
	SlotEvening = "evening"
)

const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment references a patient and a doctor. The token number is the
// queue position within the (doctor, date, slot) group, assigned at booking.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID   primitive.ObjectID `bson:"patientId" json:"patientId"`
	DoctorID    primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	Date        string             `bson:"date" json:"date" validate:"required,datefmt"`
	Slot        string             `bson:"slot" json:"slot" validate:"required,oneof=morning evening"`
	Status      string             `bson:"status" json:"status" validate:"omitempty,oneof=pending scheduled completed cancelled"`
	TokenNumber int                `bson:"tokenNumber" json:"tokenNumber" validate:"omitempty,min=1"`
	Documents   []string           `bson:"documents" json:"documents" validate:"dive,startswith=http"`
}
