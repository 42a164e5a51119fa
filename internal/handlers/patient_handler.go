package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docspot/docspot-api/internal/booking"
	"github.com/docspot/docspot-api/internal/models"
	"github.com/docspot/docspot-api/internal/utils"
)

// PatientSearchDoctors filters the directory by speciality and location.
func (h *Handler) PatientSearchDoctors(c *gin.Context) {
	h.findDoctors(c, buildDoctorFilter(c.Query("speciality"), c.Query("location"), ""))
}

type BookRequest struct {
	DoctorID  string   `json:"doctorId" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	Slot      string   `json:"slot" binding:"required"`
	Documents []string `json:"documents"`
}

// BookAppointment books a slot with a doctor and returns the queue token.
func (h *Handler) BookAppointment(c *gin.Context) {
	patientID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid doctor ID"})
		return
	}

	apt := models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      req.Date,
		Slot:      req.Slot,
		Status:    models.StatusPending,
		Documents: req.Documents,
	}
	if apt.Documents == nil {
		apt.Documents = []string{}
	}
	if err := models.Validate(&apt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var doctor models.Doctor
	if err := h.doctors().FindOne(ctx, bson.M{"_id": doctorID}).Decode(&doctor); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Doctor not found"})
		return
	}

	var patient models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Patient not found"})
		return
	}

	tokenNumber, err := h.Allocator.Book(ctx, &apt, doctor.Limit(apt.Slot))
	if err != nil {
		if errors.Is(err, booking.ErrSlotFull) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Slot full"})
			return
		}
		log.Printf("BookAppointment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// Best-effort; the booking stands even if the email never goes out.
	h.Mailer.SendBookingConfirmation(&patient, &doctor, &apt)

	c.JSON(http.StatusOK, gin.H{"msg": "Appointment booked", "tokenNumber": tokenNumber})
}

// Profile returns the authenticated patient's own document.
func (h *Handler) Profile(c *gin.Context) {
	patientID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var patient models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Patient not found"})
		return
	}

	c.JSON(http.StatusOK, patient)
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateProfile lets a patient change their own profile fields. The role is
// never touched; a new password is re-hashed before storage.
func (h *Handler) UpdateProfile(c *gin.Context) {
	patientID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		set["password"] = hashed
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No update fields provided"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var patient models.User
	err := h.users().FindOneAndUpdate(ctx, bson.M{"_id": patientID}, bson.M{"$set": set}, mongoAfter()).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Patient not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "patient": patient})
}

// AppointmentWithDoctor expands the referenced doctor for the patient view.
type AppointmentWithDoctor struct {
	models.Appointment
	Doctor *models.Doctor `json:"doctor,omitempty"`
}

// PatientAppointments lists the patient's appointments with doctors expanded.
func (h *Handler) PatientAppointments(c *gin.Context) {
	patientID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	cursor, err := h.appointments().Find(ctx, bson.M{"patientId": patientID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	doctors, err := h.loadDoctors(ctx, appointments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	out := make([]AppointmentWithDoctor, 0, len(appointments))
	for _, apt := range appointments {
		out = append(out, AppointmentWithDoctor{Appointment: apt, Doctor: doctors[apt.DoctorID]})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) loadDoctors(ctx context.Context, appointments []models.Appointment) (map[primitive.ObjectID]*models.Doctor, error) {
	ids := make([]primitive.ObjectID, 0, len(appointments))
	seen := make(map[primitive.ObjectID]bool)
	for _, apt := range appointments {
		if !seen[apt.DoctorID] {
			seen[apt.DoctorID] = true
			ids = append(ids, apt.DoctorID)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]*models.Doctor{}, nil
	}

	cursor, err := h.doctors().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]*models.Doctor, len(ids))
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, err
		}
		doctor := d
		byID[doctor.ID] = &doctor
	}
	return byID, cursor.Err()
}

// cancelOwnFilter matches an appointment only when it belongs to the
// requesting patient, so one patient can never cancel another's booking.
func cancelOwnFilter(appointmentID, patientID primitive.ObjectID) bson.M {
	return bson.M{"_id": appointmentID, "patientId": patientID}
}

// CancelAppointment sets status to cancelled, but only when the appointment
// belongs to the requesting patient.
func (h *Handler) CancelAppointment(c *gin.Context) {
	patientID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid appointment ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	var apt models.Appointment
	err = h.appointments().FindOneAndUpdate(
		ctx,
		cancelOwnFilter(appointmentID, patientID),
		statusSet(models.StatusCancelled),
		mongoAfter(),
	).Decode(&apt)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found or not authorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled", "appointment": apt})
}
