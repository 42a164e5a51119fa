package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docspot/docspot-api/internal/models"
)

// AppointmentWithPatient expands the referenced patient for the doctor view.
type AppointmentWithPatient struct {
	models.Appointment
	Patient *models.User `json:"patient,omitempty"`
}

// DoctorAppointments lists the authenticated doctor's appointments, optionally
// filtered by an exact YYYY-MM-DD date, with each patient expanded.
func (h *Handler) DoctorAppointments(c *gin.Context) {
	doctorID, ok := principalID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
		return
	}

	query := bson.M{"doctorId": doctorID}
	if date := c.Query("date"); date != "" {
		if !models.ValidDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid date format (use YYYY-MM-DD)"})
			return
		}
		query["date"] = date
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	cursor, err := h.appointments().Find(ctx, query)
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

	patients, err := h.loadPatients(ctx, appointments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	out := make([]AppointmentWithPatient, 0, len(appointments))
	for _, apt := range appointments {
		out = append(out, AppointmentWithPatient{Appointment: apt, Patient: patients[apt.PatientID]})
	}

	c.JSON(http.StatusOK, out)
}

// loadPatients fetches the users referenced by a batch of appointments.
func (h *Handler) loadPatients(ctx context.Context, appointments []models.Appointment) (map[primitive.ObjectID]*models.User, error) {
	ids := make([]primitive.ObjectID, 0, len(appointments))
	seen := make(map[primitive.ObjectID]bool)
	for _, apt := range appointments {
		if !seen[apt.PatientID] {
			seen[apt.PatientID] = true
			ids = append(ids, apt.PatientID)
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]*models.User{}, nil
	}

	cursor, err := h.users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]*models.User, len(ids))
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		user := u
		byID[user.ID] = &user
	}
	return byID, cursor.Err()
}

// UpdateAppointmentStatus overwrites an appointment's status with the value
// the doctor sent, verbatim. There is deliberately no enum validation and no
// ownership check here, matching the existing API contract; see DESIGN.md.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid appointment ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	res, err := h.appointments().UpdateOne(ctx, bson.M{"_id": appointmentID}, statusSet(req.Status))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Status updated"})
}

// principalID reads the authenticated user's ObjectID from the gin context.
func principalID(c *gin.Context) (primitive.ObjectID, bool) {
	hex, exists := c.Get("userID")
	if !exists {
		return primitive.NilObjectID, false
	}
	s, ok := hex.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
