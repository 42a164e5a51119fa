package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultDoctorImage is used when an admin adds a doctor without a photo.
const DefaultDoctorImage = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// MaxAppointments is the per-slot daily booking capacity of a doctor.
type MaxAppointments struct {
	Morning int `bson:"morning" json:"morning" validate:"min=0"`
	Evening int `bson:"evening" json:"evening" validate:"min=0"`
}

// Doctor is provisioned by an admin only; there is no doctor self-signup.
type Doctor struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email           string             `bson:"email" json:"email" validate:"required,email"`
	Password        string             `bson:"password" json:"-"`
	Age             int                `bson:"age" json:"age" validate:"required,min=25,max=100"`
	Gender          string             `bson:"gender" json:"gender" validate:"required,oneof=male female other"`
	Speciality      string             `bson:"speciality" json:"speciality" validate:"required"`
	Qualification   string             `bson:"qualification" json:"qualification" validate:"required"`
	Hospital        string             `bson:"hospital" json:"hospital" validate:"required"`
	Address         string             `bson:"address" json:"address" validate:"required"`
	ImageURL        string             `bson:"image_url" json:"image_url" validate:"required,startswith=http"`
	MaxAppointments MaxAppointments    `bson:"maxAppointments" json:"maxAppointments"`
	Location        string             `bson:"location" json:"location" validate:"required"`
	Role            string             `bson:"role" json:"role"`
}

// Limit returns the doctor's capacity for a slot, zero for unknown slots.
func (d *Doctor) Limit(slot string) int {
	switch slot {
	case SlotMorning:
		return d.MaxAppointments.Morning
	case SlotEvening:
		return d.MaxAppointments.Evening
	}
	return 0
}
