package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCustomerRepository struct {
	DB *gorm.DB
}

func NewDefaultCustomerRepository(db *gorm.DB) *DefaultCustomerRepository {
	return &DefaultCustomerRepository{DB: db}
}

func (r *DefaultCustomerRepository) FindOrCreateCustomer(ctx context.Context, contact domain.CustomerContact) (*domain.Customer, error) {
	const op = "repository.FindOrCreateCustomer"

	model, err := findOrCreateCustomer(r.DB.WithContext(ctx), contact)
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}
	return mappers.ToDomainCustomer(model), nil
}

func (r *DefaultCustomerRepository) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	const op = "repository.ListCustomers"

	var customerModels []models.CustomerModel
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&customerModels).Error; err != nil {
		return nil, wrapErr(op, err, nil)
	}

	customers := make([]*domain.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = mappers.ToDomainCustomer(&customerModels[i])
	}
	return customers, nil
}

// findOrCreateCustomer runs on db, which may be a transaction. Known customers only get
// the contact fields that are non-empty and different from what is stored.
func findOrCreateCustomer(db *gorm.DB, contact domain.CustomerContact) (*models.CustomerModel, error) {
	if contact.MessengerID == "" {
		return nil, domain.ErrMissingParticipant
	}

	var existing models.CustomerModel
	err := db.Where("messenger_id = ?", contact.MessengerID).First(&existing).Error
	switch {
	case err == nil:
		updates := contactUpdates(&existing, contact)
		if len(updates) == 0 {
			return &existing, nil
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	created := models.CustomerModel{
		ID:          uuid.New().String(),
		MessengerID: contact.MessengerID,
		Phone:       contact.Phone,
		Address:     contact.Address,
		Name:        contact.Name,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "messenger_id"}},
		DoNothing: true,
	}).Create(&created)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 1 {
		return &created, nil
	}

	// Lost a race with a concurrent insert for the same participant.
	if err := db.Where("messenger_id = ?", contact.MessengerID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func contactUpdates(existing *models.CustomerModel, contact domain.CustomerContact) map[string]interface{} {
	updates := make(map[string]interface{})
	if contact.Phone != "" && contact.Phone != existing.Phone {
		updates["phone"] = contact.Phone
	}
	if contact.Address != "" && contact.Address != existing.Address {
		updates["address"] = contact.Address
	}
	if contact.Name != "" && contact.Name != existing.Name {
		updates["name"] = contact.Name
	}
	return updates
}
