package reservation

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusConverted Status = "converted"
	StatusCancelled Status = "cancelled"
)

// AllowTransition mirrors the proposal state machine: a hold either becomes
// a sale or is released, nothing else.
var AllowTransition = map[Status][]Status{
	StatusActive:    {StatusConverted, StatusCancelled},
	StatusConverted: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ReservationID string `gorm:"size:32;uniqueIndex:ux_reservations_reservation_id_active" json:"reservation_id"`
	Number        string `gorm:"size:16;index" json:"number"`
	VehicleID     string `gorm:"size:32;index" json:"vehicle_id"`
	ClientID      string `gorm:"size:32;index" json:"client_id"`
	SellerID      string `gorm:"size:32;index" json:"seller_id"`

	Status          Status    `gorm:"size:16;index;default:'active'" json:"status"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reservation) TableName() string { return "reservations" }

// ApplyTransition moves the reservation through its lifecycle. The cascaded
// vehicle status change belongs to the usecase, which runs both writes in
// one transaction.
func (r *Reservation) ApplyTransition(to Status, now time.Time) error {
	if !CanTransition(r.Status, to) {
		return ErrInvalidTransition
	}
	if r.Status == to {
		return nil
	}
	r.Status = to
	r.StatusUpdatedAt = now
	return nil
}
