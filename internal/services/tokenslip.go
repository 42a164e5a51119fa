package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/docspot/docspot-api/internal/models"
)

// BuildTokenSlip renders the printable queue slip attached to the booking
// confirmation email.
func BuildTokenSlip(patientName string, doctor *models.Doctor, apt *models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "DocSpot Appointment Slip")
	pdf.Ln(16)

	pdf.SetFont("Arial", "B", 32)
	pdf.Cell(0, 16, fmt.Sprintf("Token No. %d", apt.TokenNumber))
	pdf.Ln(22)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Patient: %s", patientName),
		fmt.Sprintf("Doctor: Dr. %s (%s)", doctor.Name, doctor.Speciality),
		fmt.Sprintf("Hospital: %s, %s", doctor.Hospital, doctor.Location),
		fmt.Sprintf("Date: %s", apt.Date),
		fmt.Sprintf("Slot: %s", titleCase(apt.Slot)),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 6, "Please arrive 15 minutes before your slot and carry this slip.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
