package services

import (
	"bytes"
	"testing"

	"github.com/docspot/docspot-api/internal/models"
)

func TestBuildTokenSlip(t *testing.T) {
	apt := &models.Appointment{Date: "2025-06-01", Slot: "morning", TokenNumber: 3}

	slip, err := BuildTokenSlip("Asha Rao", testDoctor(), apt)
	if err != nil {
		t.Fatalf("BuildTokenSlip: %v", err)
	}
	if len(slip) == 0 {
		t.Fatal("empty slip")
	}
	if !bytes.HasPrefix(slip, []byte("%PDF")) {
		t.Errorf("slip does not start with a PDF header: %q", slip[:8])
	}
}
