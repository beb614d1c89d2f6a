package repository

import (
	"context"
	"fmt"
	"strings"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Create inserts a new airline
func (r *GormAirlineRepository) Create(ctx context.Context, airline *entity.Airline) error {
	model := Airlines{
		Code:  airline.Code,
		Name:  airline.Name,
		Rules: airline.Rules,
		Logo:  airline.Logo,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return storeError(fmt.Sprintf("create airline %s", airline.Code), err)
	}

	airline.ID = model.ID
	airline.CreatedAt = model.CreatedAt
	airline.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByCode finds an airline by code
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	model, err := r.find(ctx, code)
	if err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

// Update saves every mutable field of the airline identified by its code
func (r *GormAirlineRepository) Update(ctx context.Context, airline *entity.Airline) error {
	model, err := r.find(ctx, airline.Code)
	if err != nil {
		return err
	}

	model.Name = airline.Name
	model.Rules = airline.Rules
	model.Logo = airline.Logo

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return storeError(fmt.Sprintf("update airline %s", airline.Code), err)
	}
	airline.ID = model.ID
	airline.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes the airline, refusing while flights reference it
func (r *GormAirlineRepository) Delete(ctx context.Context, code string) error {
	model, err := r.find(ctx, code)
	if err != nil {
		return err
	}

	op := fmt.Sprintf("delete airline %s", code)
	if err := ensureUnreferenced(ctx, r.db, op, "airline_id = ?", model.ID); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(model).Error; err != nil {
		return referenceError(op, err, true)
	}
	return nil
}

// List returns every airline ordered by code
func (r *GormAirlineRepository) List(ctx context.Context) ([]*entity.Airline, error) {
	var models []Airlines
	if err := r.db.WithContext(ctx).Order("airline_code").Find(&models).Error; err != nil {
		return nil, storeError("list airlines", err)
	}

	airlines := make([]*entity.Airline, 0, len(models))
	for i := range models {
		airlines = append(airlines, models[i].toEntity())
	}
	return airlines, nil
}

func (r *GormAirlineRepository) find(ctx context.Context, code string) (*Airlines, error) {
	var model Airlines
	if err := r.db.WithContext(ctx).Where("airline_code = ?", code).First(&model).Error; err != nil {
		return nil, storeError(fmt.Sprintf("airline %s", code), err)
	}
	return &model, nil
}

// maxListedReferences caps how many referencing flight numbers an ErrInUse names
const maxListedReferences = 5

// ensureUnreferenced fails with ErrInUse, naming the referencing flights, when a
// flight matches the reference condition
func ensureUnreferenced(ctx context.Context, db *gorm.DB, op string, query string, args ...interface{}) error {
	var count int64
	if err := db.WithContext(ctx).Model(&Flights{}).Where(query, args...).Count(&count).Error; err != nil {
		return storeError(op, err)
	}
	if count == 0 {
		return nil
	}

	var numbers []string
	err := db.WithContext(ctx).Model(&Flights{}).
		Where(query, args...).
		Order("flight_number").
		Limit(maxListedReferences).
		Pluck("flight_number", &numbers).Error
	if err != nil {
		return storeError(op, err)
	}

	listed := strings.Join(numbers, ", ")
	if int(count) > len(numbers) {
		listed += ", ..."
	}
	return fmt.Errorf("%s: referenced by %d flights (%s): %w", op, count, listed, domain.ErrInUse)
}
