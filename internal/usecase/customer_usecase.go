package usecase

import (
	"context"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
)

type CustomerUsecase interface {
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}

type DefaultCustomerUsecase struct {
	CustomerRepo domain.CustomerRepository
}

func NewDefaultCustomerUsecase(customerRepo domain.CustomerRepository) *DefaultCustomerUsecase {
	return &DefaultCustomerUsecase{CustomerRepo: customerRepo}
}

func (uc *DefaultCustomerUsecase) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return uc.CustomerRepo.ListCustomers(ctx)
}
