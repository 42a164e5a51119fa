package services

import (
	"strings"
	"testing"

	"github.com/docspot/docspot-api/internal/models"
)

func testDoctor() *models.Doctor {
	return &models.Doctor{
		Name:       "Meera Iyer",
		Speciality: "Cardiology",
		Hospital:   "City Care",
		Location:   "Chennai",
	}
}

func TestBookingEmailHTML(t *testing.T) {
	html := bookingEmailHTML("Asha Rao", testDoctor(), "2025-06-01", "morning")

	for _, want := range []string{"Asha Rao", "Dr. Meera Iyer", "2025-06-01", "morning", "Cardiology", "City Care", "Appointment Confirmed"} {
		if !strings.Contains(html, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestSendBookingConfirmationUnconfigured(t *testing.T) {
	// A mailer without credentials must be a no-op, not a panic.
	m := NewMailer("smtp.example.com", 587, "", "")
	m.SendBookingConfirmation(
		&models.User{Name: "Asha Rao", Email: "asha@example.com"},
		testDoctor(),
		&models.Appointment{Date: "2025-06-01", Slot: "morning", TokenNumber: 1},
	)

	var nilMailer *Mailer
	nilMailer.SendBookingConfirmation(nil, nil, nil)
}
