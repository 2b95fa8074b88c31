package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

// CreateOrder stores the customer record, the order row and every item in one transaction,
// so a failure leaves no partial order behind. IDs and timestamps are written back into order.
func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order, contact domain.CustomerContact) error {
	const op = "repository.CreateOrder"

	if len(order.Items) == 0 {
		return domain.ErrEmptyOrder
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := findOrCreateCustomer(tx, contact)
		if err != nil {
			return err
		}

		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		order.CustomerID = customer.ID
		order.MessengerID = contact.MessengerID

		orderModel := mappers.ToGORMOrder(order)
		if err := tx.Omit(clause.Associations).Create(orderModel).Error; err != nil {
			return err
		}

		itemModels := make([]*models.OrderItemModel, len(order.Items))
		for i := range order.Items {
			item := &order.Items[i]
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.OrderID = order.ID
			itemModels[i] = mappers.ToGORMOrderItem(item)
		}
		if err := tx.Create(&itemModels).Error; err != nil {
			return err
		}

		order.CreatedAt = orderModel.CreatedAt
		order.UpdatedAt = orderModel.UpdatedAt
		for i := range order.Items {
			order.Items[i].CreatedAt = itemModels[i].CreatedAt
		}
		return nil
	})
	return wrapErr(op, err, nil)
}

// UpdateOrderStatus sets the status, stamps delivered_at on delivery and records a history
// row when the operator left a note.
func (r *DefaultOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, note string) (*domain.Order, error) {
	const op = "repository.UpdateOrderStatus"

	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"order_status": status}
		if status == domain.StatusDelivered {
			updates["delivered_at"] = time.Now()
		}

		result := tx.Model(&models.OrderModel{ID: orderID}).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if note == "" {
			return nil
		}
		history := mappers.ToGORMStatusHistory(&domain.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Status:    status,
			Notes:     note,
			ChangedBy: domain.StatusChangedByAdmin,
		})
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, wrapErr(op, err, domain.ErrOrderNotFound)
	}
	return r.GetOrderByID(ctx, orderID)
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	const op = "repository.GetOrderByID"

	var order models.OrderModel
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return nil, wrapErr(op, err, domain.ErrOrderNotFound)
	}
	return mappers.ToDomainOrder(&order), nil
}

// GetOrders returns orders with their items, newest first.
func (r *DefaultOrderRepository) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	const op = "repository.GetOrders"

	query := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items")
	if filter.Status != "" {
		query = query.Where("order_status = ?", filter.Status)
	}

	var orderModels []models.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, wrapErr(op, err, nil)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) CountOrders(ctx context.Context, status domain.OrderStatus, since time.Time) (int64, error) {
	const op = "repository.CountOrders"

	query := r.DB.WithContext(ctx).Model(&models.OrderModel{})
	if status != "" {
		query = query.Where("order_status = ?", status)
	}
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, wrapErr(op, err, nil)
	}
	return total, nil
}

// DeliveredOrdersSince lists delivered orders created at or after since (all of them when zero).
func (r *DefaultOrderRepository) DeliveredOrdersSince(ctx context.Context, since time.Time) ([]domain.OrderAmount, error) {
	const op = "repository.DeliveredOrdersSince"

	query := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("created_at", "total_amount").
		Where("order_status = ?", domain.StatusDelivered)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var rows []models.OrderModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, wrapErr(op, err, nil)
	}

	amounts := make([]domain.OrderAmount, len(rows))
	for i, row := range rows {
		amounts[i] = domain.OrderAmount{CreatedAt: row.CreatedAt, TotalAmount: row.TotalAmount}
	}
	return amounts, nil
}

func (r *DefaultOrderRepository) DeliveredOrderItems(ctx context.Context) ([]domain.OrderItem, error) {
	const op = "repository.DeliveredOrderItems"

	var itemModels []models.OrderItemModel
	err := r.DB.WithContext(ctx).
		Select("order_items.*").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.order_status = ?", domain.StatusDelivered).
		Find(&itemModels).Error
	if err != nil {
		return nil, wrapErr(op, err, nil)
	}

	items := make([]domain.OrderItem, len(itemModels))
	for i := range itemModels {
		items[i] = mappers.ToDomainOrderItem(&itemModels[i])
	}
	return items, nil
}
