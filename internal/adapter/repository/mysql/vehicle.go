package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	vehicleDomain "dealerdesk-backend/internal/domain/vehicle"
)

type VehicleRepository struct{ db *gorm.DB }

func NewVehicleRepository(db *gorm.DB) *VehicleRepository { return &VehicleRepository{db: db} }

func (r *VehicleRepository) Create(ctx context.Context, v *vehicleDomain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	return r.db.WithContext(ctx).Omit("Photos").Save(v).Error
}

func (r *VehicleRepository) GetByVehicleID(ctx context.Context, vehicleID string) (*vehicleDomain.Vehicle, error) {
	var out vehicleDomain.Vehicle
	res := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("vehicle_id = ?", vehicleID).
		First(&out)
	return &out, res.Error
}

// GetByVehicleIDForUpdate locks the vehicle row; only meaningful inside a
// transaction. sqlite (tests) has no row locks, so the clause is mysql-only.
func (r *VehicleRepository) GetByVehicleIDForUpdate(ctx context.Context, vehicleID string) (*vehicleDomain.Vehicle, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out vehicleDomain.Vehicle
	res := q.Where("vehicle_id = ?", vehicleID).First(&out)
	return &out, res.Error
}

func (r *VehicleRepository) List(ctx context.Context, f vehicleDomain.Filter) ([]vehicleDomain.Vehicle, error) {
	q := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	var out []vehicleDomain.Vehicle
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *VehicleRepository) ReplacePhotos(ctx context.Context, v *vehicleDomain.Vehicle, photos []vehicleDomain.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", v.ID).Delete(&vehicleDomain.Photo{}).Error; err != nil {
			return err
		}
		for i := range photos {
			photos[i].VehicleRef = v.ID
			photos[i].Position = i
		}
		if len(photos) == 0 {
			v.Photos = nil
			return nil
		}
		if err := tx.Create(&photos).Error; err != nil {
			return err
		}
		v.Photos = photos
		return nil
	})
}
