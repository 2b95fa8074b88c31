package mappers

import (
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
)

func ToDomainCustomer(model *models.CustomerModel) *domain.Customer {
	return &domain.Customer{
		ID:          model.ID,
		MessengerID: model.MessengerID,
		Phone:       model.Phone,
		Address:     model.Address,
		Name:        model.Name,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
