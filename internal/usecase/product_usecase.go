package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	productdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/product"
	"github.com/go-playground/validator/v10"
)

type ProductUsecase interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input *productdto.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, input *productdto.UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	SeedProducts(ctx context.Context) (int, error)
}

// MenuRefresher reloads the bot's menu after a catalogue write.
type MenuRefresher interface {
	Refresh(ctx context.Context) error
}

type DefaultProductUsecase struct {
	ProductRepo domain.ProductRepository
	menu        MenuRefresher
	validate    *validator.Validate
}

// NewDefaultProductUsecase builds the catalogue usecase. menu may be nil.
func NewDefaultProductUsecase(productRepo domain.ProductRepository, menu MenuRefresher, validate *validator.Validate) *DefaultProductUsecase {
	return &DefaultProductUsecase{ProductRepo: productRepo, menu: menu, validate: validate}
}

func (uc *DefaultProductUsecase) ListProducts(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	return uc.ProductRepo.ListProducts(ctx, includeInactive)
}

func (uc *DefaultProductUsecase) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return uc.ProductRepo.GetProductByID(ctx, productID)
}

func (uc *DefaultProductUsecase) CreateProduct(ctx context.Context, input *productdto.CreateProductInput) (*domain.Product, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !input.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}

	product := &domain.Product{
		Code:        domain.NormalizeCode(input.Code),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := uc.ProductRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	uc.refreshMenu(ctx)
	return product, nil
}

func (uc *DefaultProductUsecase) UpdateProduct(ctx context.Context, productID string, input *productdto.UpdateProductInput) (*domain.Product, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	patch := domain.ProductPatch{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		IsActive:    input.IsActive,
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
		}
		price := input.Price.Round(2)
		patch.Price = &price
	}
	product, err := uc.ProductRepo.UpdateProduct(ctx, productID, patch)
	if err != nil {
		return nil, err
	}
	uc.refreshMenu(ctx)
	return product, nil
}

// DeleteProduct is a soft delete: the product leaves the menu, order items keep pointing at it.
func (uc *DefaultProductUsecase) DeleteProduct(ctx context.Context, productID string) error {
	if err := uc.ProductRepo.SoftDeleteProduct(ctx, productID); err != nil {
		return err
	}
	uc.refreshMenu(ctx)
	return nil
}

// SeedProducts upserts the sample catalogue by code and returns how many products it wrote.
func (uc *DefaultProductUsecase) SeedProducts(ctx context.Context) (int, error) {
	products := SampleProducts()
	if err := uc.ProductRepo.UpsertProducts(ctx, products); err != nil {
		return 0, err
	}
	uc.refreshMenu(ctx)
	return len(products), nil
}

// refreshMenu keeps the bot in step with the catalogue. The write already succeeded, so a
// failed reload is left to the cache, which logs it and retries on its next tick.
func (uc *DefaultProductUsecase) refreshMenu(ctx context.Context) {
	if uc.menu != nil {
		_ = uc.menu.Refresh(ctx)
	}
}
