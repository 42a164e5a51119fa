package services

import (
	"fmt"
	"io"
	"log"

	"github.com/go-gomail/gomail"

	"github.com/docspot/docspot-api/internal/models"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(host string, port int, username, password string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password}
}

// SendBookingConfirmation emails the patient their token slip. The send runs
// in a goroutine so it never blocks the booking response; failures are logged
// and do not roll back the appointment.
func (m *Mailer) SendBookingConfirmation(patient *models.User, doctor *models.Doctor, apt *models.Appointment) {
	if m == nil || m.username == "" {
		log.Println("Email not sent: mailer is not configured.")
		return
	}
	go m.sendConfirmation(patient, doctor, apt)
}

func (m *Mailer) sendConfirmation(patient *models.User, doctor *models.Doctor, apt *models.Appointment) {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.username, "DocSpot")
	msg.SetHeader("To", patient.Email)
	msg.SetHeader("Subject", "Your Appointment is Confirmed")
	msg.SetBody("text/html", bookingEmailHTML(patient.Name, doctor, apt.Date, apt.Slot))

	if slip, err := BuildTokenSlip(patient.Name, doctor, apt); err != nil {
		log.Printf("Failed to build token slip for %s: %v", patient.Email, err)
	} else {
		msg.Attach("token-slip.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(slip)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", patient.Email, err)
		return
	}
	log.Printf("Sent booking confirmation to %s", patient.Email)
}

func bookingEmailHTML(patientName string, doctor *models.Doctor, date, slot string) string {
	return fmt.Sprintf(`
      <h2>Appointment Confirmed</h2>
      <p>Dear %s,</p>
      <p>Your appointment with <strong>Dr. %s</strong> has been successfully booked.</p>
      <ul>
        <li><strong>Date:</strong> %s</li>
        <li><strong>Slot:</strong> %s</li>
        <li><strong>Doctor:</strong> %s, %s</li>
      </ul>
      <p>Thank you for using DocSpot!</p>
    `, patientName, doctor.Name, date, slot, doctor.Speciality, doctor.Hospital)
}
