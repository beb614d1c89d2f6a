package repository

import (
	"context"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Create inserts a new airport
func (r *GormAirportRepository) Create(ctx context.Context, airport *entity.Airport) error {
	model := Airports{
		Code:    airport.Code,
		Name:    airport.Name,
		City:    airport.City,
		Country: airport.Country,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeError(fmt.Sprintf("create airport %s", airport.Code), err)
	}

	airport.ID = model.ID
	airport.CreatedAt = model.CreatedAt
	airport.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByCode finds an airport by code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	model, err := r.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

// Update saves every mutable field of the airport identified by its code
func (r *GormAirportRepository) Update(ctx context.Context, airport *entity.Airport) error {
	model, err := r.find(ctx, airport.Code)
	if err != nil {
		return err
	}

	model.Name = airport.Name
	model.City = airport.City
	model.Country = airport.Country

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return storeError(fmt.Sprintf("update airport %s", airport.Code), err)
	}
	airport.ID = model.ID
	airport.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the airport, refusing while flights depart from or arrive at it
func (r *GormAirportRepository) Delete(ctx context.Context, code string) error {
	model, err := r.find(ctx, code)
	if err != nil {
		return err
	}

	op := fmt.Sprintf("delete airport %s", code)
	if err := ensureUnreferenced(ctx, r.db, op, "departure_airport_id = ? OR arrival_airport_id = ?", model.ID, model.ID); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(model).Error; err != nil {
		return referenceError(op, err, true)
	}
	return nil
}

// List returns every airport ordered by code
func (r *GormAirportRepository) List(ctx context.Context) ([]*entity.Airport, error) {
	var models []Airports
	if err := r.db.WithContext(ctx).Order("airport_code").Find(&models).Error; err != nil {
		return nil, storeError("list airports", err)
	}

	airports := make([]*entity.Airport, 0, len(models))
	for i := range models {
		airports = append(airports, models[i].toEntity())
	}
	return airports, nil
}

func (r *GormAirportRepository) find(ctx context.Context, code string) (*Airports, error) {
	var model Airports
	if err := r.db.WithContext(ctx).Where("airport_code = ?", code).First(&model).Error; err != nil {
		return nil, storeError(fmt.Sprintf("airport %s", code), err)
	}
	return &model, nil
}
