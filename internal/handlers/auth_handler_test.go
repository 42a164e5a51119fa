package handlers

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestEmailTaken(t *testing.T) {
	lookupFailed := errors.New("lookup failed")

	cases := []struct {
		name      string
		lookupErr error
		taken     bool
		wantErr   error
	}{
		// FindOne returning a document means a second registration with the
		// same address must be rejected.
		{name: "existing account", lookupErr: nil, taken: true},
		{name: "free address", lookupErr: mongo.ErrNoDocuments, taken: false},
		{name: "lookup failure propagates", lookupErr: lookupFailed, wantErr: lookupFailed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			taken, err := emailTaken(c.lookupErr)
			if taken != c.taken {
				t.Errorf("taken = %v, want %v", taken, c.taken)
			}
			if !errors.Is(err, c.wantErr) {
				t.Errorf("err = %v, want %v", err, c.wantErr)
			}
		})
	}
}
