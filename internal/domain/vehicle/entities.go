package vehicle

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("vehicle not found")
	ErrUnavailable   = errors.New("vehicle is not available")
	ErrTooManyPhotos = errors.New("a vehicle carries at most 5 photos")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
)

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelFlex     FuelType = "flex"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionCVT       Transmission = "cvt"
	TransmissionAutomated Transmission = "automated"
)

// MaxPhotos caps the ordered photo references per vehicle.
const MaxPhotos = 5

type Vehicle struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	VehicleID       string         `gorm:"size:32;uniqueIndex:ux_vehicles_vehicle_id_active" json:"vehicle_id"`
	Brand           string         `gorm:"size:60" json:"brand"`
	Model           string         `gorm:"size:60" json:"model"`
	Version         string         `gorm:"size:60" json:"version"`
	ManufactureYear int            `json:"manufacture_year"`
	ModelYear       int            `json:"model_year"`
	Price           float64        `gorm:"type:decimal(12,2)" json:"price"`
	Mileage         int            `json:"mileage"`
	FuelType        FuelType       `gorm:"size:16" json:"fuel_type"`
	Transmission    Transmission   `gorm:"size:16" json:"transmission"`
	Color           string         `gorm:"size:40" json:"color"`
	Plate           string         `gorm:"size:10;index" json:"plate"`
	Chassis         string         `gorm:"size:32" json:"chassis"`
	Renavam         string         `gorm:"size:16" json:"renavam"`
	Status          Status         `gorm:"size:16;index;default:'available'" json:"status"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	Photos          []Photo        `gorm:"foreignKey:VehicleRef;references:ID" json:"photos"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string { return "vehicles" }

// SetStatus stamps a status change; callers decide whether the change is
// legal (reservation/sale flows own that policy).
func (v *Vehicle) SetStatus(s Status, now time.Time) {
	v.Status = s
	v.StatusUpdatedAt = now
}

// Photo is one ordered photo reference; the blob itself lives in external
// object storage, only its URL is kept here.
type Photo struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	VehicleRef uint64    `gorm:"column:vehicle_id;index" json:"-"`
	Position   int       `json:"position"`
	URL        string    `gorm:"type:text" json:"url"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Photo) TableName() string { return "vehicle_photos" }
