package repository

import (
	"context"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) ListProducts(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	const op = "repository.ListProducts"

	query := r.DB.WithContext(ctx).Model(&models.ProductModel{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var productModels []models.ProductModel
	if err := query.Order("code ASC").Find(&productModels).Error; err != nil {
		return nil, wrapErr(op, err, nil)
	}

	products := make([]*domain.Product, len(productModels))
	for i := range productModels {
		products[i] = mappers.ToDomainProduct(&productModels[i])
	}
	return products, nil
}

// GetProductByCode finds an active product; the code is matched upper-cased.
func (r *DefaultProductRepository) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	const op = "repository.GetProductByCode"

	var model models.ProductModel
	err := r.DB.WithContext(ctx).
		Where("code = ? AND is_active = ?", domain.NormalizeCode(code), true).
		First(&model).Error
	if err != nil {
		return nil, wrapErr(op, err, domain.ErrProductNotFound)
	}
	return mappers.ToDomainProduct(&model), nil
}

func (r *DefaultProductRepository) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	const op = "repository.GetProductByID"

	var model models.ProductModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", productID).Error; err != nil {
		return nil, wrapErr(op, err, domain.ErrProductNotFound)
	}
	return mappers.ToDomainProduct(&model), nil
}

func (r *DefaultProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	const op = "repository.CreateProduct"

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	model := mappers.ToGORMProduct(product)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProduct
		}
		return wrapErr(op, err, nil)
	}

	product.Code = model.Code
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultProductRepository) UpdateProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	const op = "repository.UpdateProduct"

	columns := mappers.ProductPatchColumns(patch)
	if len(columns) > 0 {
		result := r.DB.WithContext(ctx).
			Model(&models.ProductModel{ID: productID}).
			Updates(columns)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return nil, domain.ErrDuplicateProduct
			}
			return nil, wrapErr(op, result.Error, nil)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrProductNotFound
		}
	}
	return r.GetProductByID(ctx, productID)
}

// SoftDeleteProduct hides the product from the menu; order history keeps referencing it.
func (r *DefaultProductRepository) SoftDeleteProduct(ctx context.Context, productID string) error {
	const op = "repository.SoftDeleteProduct"

	result := r.DB.WithContext(ctx).
		Model(&models.ProductModel{ID: productID}).
		Update("is_active", false)
	if result.Error != nil {
		return wrapErr(op, result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpsertProducts inserts products keyed by code, overwriting the catalogue fields of existing codes.
func (r *DefaultProductRepository) UpsertProducts(ctx context.Context, products []*domain.Product) error {
	const op = "repository.UpsertProducts"

	if len(products) == 0 {
		return nil
	}
	productModels := make([]*models.ProductModel, len(products))
	for i, product := range products {
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		productModels[i] = mappers.ToGORMProduct(product)
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price", "image_url", "category", "is_active", "updated_at",
		}),
	}).Create(&productModels).Error
	return wrapErr(op, err, nil)
}
