package reservation

import (
	"errors"
	"testing"
	"time"
)

func TestApplyTransition(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	r := &Reservation{Status: StatusActive}
	if err := r.ApplyTransition(StatusConverted, now); err != nil {
		t.Fatalf("active -> converted: %v", err)
	}
	if r.Status != StatusConverted || !r.StatusUpdatedAt.Equal(now) {
		t.Fatalf("unexpected state: %+v", r)
	}

	if err := r.ApplyTransition(StatusCancelled, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("converted is terminal: got %v", err)
	}

	r = &Reservation{Status: StatusActive}
	if err := r.ApplyTransition(StatusCancelled, now); err != nil {
		t.Fatalf("active -> cancelled: %v", err)
	}
	if err := r.ApplyTransition(StatusConverted, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled is terminal: got %v", err)
	}
}
