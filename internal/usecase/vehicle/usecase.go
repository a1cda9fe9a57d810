package vehicle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/pkg/id"
)

type Usecase struct{ repo vehicle.Repository }

func NewUsecase(r vehicle.Repository) *Usecase { return &Usecase{repo: r} }

type CreateVehicleInput struct {
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Version         string  `json:"version"`
	ManufactureYear int     `json:"manufacture_year"`
	ModelYear       int     `json:"model_year"`
	Price           float64 `json:"price"`
	Mileage         int     `json:"mileage"`
	FuelType        string  `json:"fuel_type"`
	Transmission    string  `json:"transmission"`
	Color           string  `json:"color"`
	Plate           string  `json:"plate"`
	Chassis         string  `json:"chassis"`
	Renavam         string  `json:"renavam"`
}

type VehicleDTO struct {
	VehicleID       string    `json:"vehicle_id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Version         string    `json:"version"`
	ManufactureYear int       `json:"manufacture_year"`
	ModelYear       int       `json:"model_year"`
	Price           float64   `json:"price"`
	Mileage         int       `json:"mileage"`
	FuelType        string    `json:"fuel_type"`
	Transmission    string    `json:"transmission"`
	Color           string    `json:"color"`
	Plate           string    `json:"plate"`
	Status          string    `json:"status"`
	PhotoURLs       []string  `json:"photo_urls"`
	CreatedAt       time.Time `json:"created_at"`
}

var errInvalidInput = errors.New("invalid vehicle input")

func (u *Usecase) Create(ctx context.Context, in CreateVehicleInput) (*VehicleDTO, error) {
	if in.Brand == "" || in.Model == "" || in.Price < 0 {
		return nil, errInvalidInput
	}

	v := &vehicle.Vehicle{
		VehicleID:       id.NewID32(),
		Brand:           in.Brand,
		Model:           in.Model,
		Version:         in.Version,
		ManufactureYear: in.ManufactureYear,
		ModelYear:       in.ModelYear,
		Price:           in.Price,
		Mileage:         in.Mileage,
		FuelType:        vehicle.FuelType(in.FuelType),
		Transmission:    vehicle.Transmission(in.Transmission),
		Color:           in.Color,
		Plate:           in.Plate,
		Chassis:         in.Chassis,
		Renavam:         in.Renavam,
		Status:          vehicle.StatusAvailable,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

func (u *Usecase) Get(ctx context.Context, vehicleID string) (*VehicleDTO, error) {
	v, err := u.repo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, err
	}
	return toDTO(v), nil
}

func (u *Usecase) List(ctx context.Context, f vehicle.Filter) ([]VehicleDTO, error) {
	vs, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]VehicleDTO, 0, len(vs))
	for i := range vs {
		out = append(out, *toDTO(&vs[i]))
	}
	return out, nil
}

type UpdateVehicleInput struct {
	Price   *float64 `json:"price"`
	Mileage *int     `json:"mileage"`
	Color   *string  `json:"color"`
	Plate   *string  `json:"plate"`
}

func (u *Usecase) Update(ctx context.Context, vehicleID string, in UpdateVehicleInput) (*VehicleDTO, error) {
	v, err := u.repo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, err
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, errInvalidInput
		}
		v.Price = *in.Price
	}
	if in.Mileage != nil {
		v.Mileage = *in.Mileage
	}
	if in.Color != nil {
		v.Color = *in.Color
	}
	if in.Plate != nil {
		v.Plate = *in.Plate
	}
	if err := u.repo.Save(ctx, v); err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

// SetPhotos replaces the ordered photo set; at most vehicle.MaxPhotos entries.
func (u *Usecase) SetPhotos(ctx context.Context, vehicleID string, urls []string) (*VehicleDTO, error) {
	if len(urls) > vehicle.MaxPhotos {
		return nil, vehicle.ErrTooManyPhotos
	}
	v, err := u.repo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, err
	}
	photos := make([]vehicle.Photo, 0, len(urls))
	for _, url := range urls {
		photos = append(photos, vehicle.Photo{URL: url})
	}
	if err := u.repo.ReplacePhotos(ctx, v, photos); err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

func toDTO(v *vehicle.Vehicle) *VehicleDTO {
	urls := make([]string, 0, len(v.Photos))
	for _, p := range v.Photos {
		urls = append(urls, p.URL)
	}
	return &VehicleDTO{
		VehicleID:       v.VehicleID,
		Brand:           v.Brand,
		Model:           v.Model,
		Version:         v.Version,
		ManufactureYear: v.ManufactureYear,
		ModelYear:       v.ModelYear,
		Price:           v.Price,
		Mileage:         v.Mileage,
		FuelType:        string(v.FuelType),
		Transmission:    string(v.Transmission),
		Color:           v.Color,
		Plate:           v.Plate,
		Status:          string(v.Status),
		PhotoURLs:       urls,
		CreatedAt:       v.CreatedAt,
	}
}
