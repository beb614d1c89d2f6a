package repository

import (
	"context"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) repository.AircraftRepository {
	return &GormAircraftRepository{
		db: db,
	}
}

// Create inserts a new aircraft
func (r *GormAircraftRepository) Create(ctx context.Context, aircraft *entity.Aircraft) error {
	model := Aircrafts{
		Model:        aircraft.Model,
		Capacity:     aircraft.Capacity,
		Manufacturer: aircraft.Manufacturer,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeError(fmt.Sprintf("create aircraft %s", aircraft.Model), err)
	}

	aircraft.ID = model.ID
	aircraft.CreatedAt = model.CreatedAt
	aircraft.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByModel finds an aircraft by model name
func (r *GormAircraftRepository) GetByModel(ctx context.Context, modelName string) (*entity.Aircraft, error) {
	model, err := r.find(ctx, modelName)
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

// Update saves capacity and manufacturer of the aircraft identified by its model
func (r *GormAircraftRepository) Update(ctx context.Context, aircraft *entity.Aircraft) error {
	model, err := r.find(ctx, aircraft.Model)
	if err != nil {
		return err
	}

	model.Capacity = aircraft.Capacity
	model.Manufacturer = aircraft.Manufacturer

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return storeError(fmt.Sprintf("update aircraft %s", aircraft.Model), err)
	}
	aircraft.ID = model.ID
	aircraft.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the aircraft, refusing while flights are operated with it
func (r *GormAircraftRepository) Delete(ctx context.Context, modelName string) error {
	model, err := r.find(ctx, modelName)
	if err != nil {
		return err
	}

	op := fmt.Sprintf("delete aircraft %s", modelName)
	if err := ensureUnreferenced(ctx, r.db, op, "aircraft_id = ?", model.ID); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(model).Error; err != nil {
		return referenceError(op, err, true)
	}
	return nil
}

// List returns every aircraft ordered by model
func (r *GormAircraftRepository) List(ctx context.Context) ([]*entity.Aircraft, error) {
	var models []Aircrafts
	if err := r.db.WithContext(ctx).Order("aircraft_model").Find(&models).Error; err != nil {
		return nil, storeError("list aircraft", err)
	}

	aircraft := make([]*entity.Aircraft, 0, len(models))
	for i := range models {
		aircraft = append(aircraft, models[i].toEntity())
	}
	return aircraft, nil
}

func (r *GormAircraftRepository) find(ctx context.Context, modelName string) (*Aircrafts, error) {
	var model Aircrafts
	if err := r.db.WithContext(ctx).Where("aircraft_model = ?", modelName).First(&model).Error; err != nil {
		return nil, storeError(fmt.Sprintf("aircraft %s", modelName), err)
	}
	return &model, nil
}
