package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs against a real database named by TEST_DATABASE_URL.
type RepositoryTestSuite struct {
	suite.Suite
	db        *gorm.DB
	ctx       context.Context
	customers *DefaultCustomerRepository
	products  *DefaultProductRepository
	orders    *DefaultOrderRepository
}

func TestRepositorySuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_URL")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.AutoMigrate(
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.OrderStatusHistoryModel{},
	))

	s.db = db
	s.ctx = context.Background()
	s.customers = NewDefaultCustomerRepository(db)
	s.products = NewDefaultProductRepository(db)
	s.orders = NewDefaultOrderRepository(db)
}

func (s *RepositoryTestSuite) SetupTest() {
	for _, table := range []string{"order_status_history", "order_items", "orders", "customers", "products"} {
		require.NoError(s.T(), s.db.Exec("DELETE FROM "+table).Error)
	}
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RepositoryTestSuite) newOrder(items ...domain.OrderItem) *domain.Order {
	total := decimal.Zero
	for i := range items {
		items[i].TotalPrice = items[i].LineTotal()
		total = total.Add(items[i].TotalPrice)
	}
	return &domain.Order{
		OrderNumber:           "ORD-" + time.Now().Format("150405.000000"),
		DeliveryAddress:       "12 Sukhumvit Rd",
		CustomerPhone:         "0812345678",
		TotalAmount:           total,
		Currency:              domain.DefaultCurrency,
		Status:                domain.StatusPending,
		PaymentStatus:         domain.PaymentPending,
		PaymentMethod:         domain.PaymentMethodCashOnDelivery,
		EstimatedDeliveryTime: time.Now().Add(domain.DeliveryEstimate),
		Items:                 items,
	}
}

func burger(qty int) domain.OrderItem {
	return domain.OrderItem{
		ProductCode: "F002",
		ProductName: "Chicken Burger",
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString("9.99"),
	}
}

func (s *RepositoryTestSuite) TestFindOrCreateCustomer_UpdatesOnlyChangedFields() {
	first, err := s.customers.FindOrCreateCustomer(s.ctx, domain.CustomerContact{MessengerID: "psid-1", Phone: "0811111111", Address: "Old road"})
	s.Require().NoError(err)

	second, err := s.customers.FindOrCreateCustomer(s.ctx, domain.CustomerContact{MessengerID: "psid-1", Address: "New road"})
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("0811111111", second.Phone)
	s.Equal("New road", second.Address)

	all, err := s.customers.ListCustomers(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *RepositoryTestSuite) TestFindOrCreateCustomer_RequiresParticipant() {
	_, err := s.customers.FindOrCreateCustomer(s.ctx, domain.CustomerContact{})
	s.ErrorIs(err, domain.ErrMissingParticipant)
}

func (s *RepositoryTestSuite) TestProducts_CodeLookupAndSoftDelete() {
	product := &domain.Product{Code: "f001", Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), IsActive: true}
	s.Require().NoError(s.products.CreateProduct(s.ctx, product))
	s.Equal("F001", product.Code)

	found, err := s.products.GetProductByCode(s.ctx, "f001")
	s.Require().NoError(err)
	s.Equal(product.ID, found.ID)

	s.ErrorIs(s.products.CreateProduct(s.ctx, &domain.Product{Code: "F001", Name: "dup", IsActive: true}), domain.ErrDuplicateProduct)

	s.Require().NoError(s.products.SoftDeleteProduct(s.ctx, product.ID))
	_, err = s.products.GetProductByCode(s.ctx, "F001")
	s.ErrorIs(err, domain.ErrProductNotFound)

	active, err := s.products.ListProducts(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(active)

	all, err := s.products.ListProducts(s.ctx, true)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *RepositoryTestSuite) TestUpdateProduct_PartialPatch() {
	product := &domain.Product{Code: "F003", Name: "Caesar Salad", Price: decimal.RequireFromString("8.99"), Category: "Salads", IsActive: true}
	s.Require().NoError(s.products.CreateProduct(s.ctx, product))

	price := decimal.RequireFromString("9.49")
	updated, err := s.products.UpdateProduct(s.ctx, product.ID, domain.ProductPatch{Price: &price})
	s.Require().NoError(err)
	s.True(updated.Price.Equal(price))
	s.Equal("Salads", updated.Category)

	_, err = s.products.UpdateProduct(s.ctx, "7f7a2f4e-0000-4000-8000-000000000000", domain.ProductPatch{Price: &price})
	s.ErrorIs(err, domain.ErrProductNotFound)
}

func (s *RepositoryTestSuite) TestUpsertProducts_IsIdempotent() {
	menu := []*domain.Product{
		{Code: "F001", Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), IsActive: true},
		{Code: "F002", Name: "Chicken Burger", Price: decimal.RequireFromString("9.99"), IsActive: true},
	}
	s.Require().NoError(s.products.UpsertProducts(s.ctx, menu))

	again := []*domain.Product{
		{Code: "F001", Name: "Margherita Pizza", Price: decimal.RequireFromString("13.49"), IsActive: true},
		{Code: "F002", Name: "Chicken Burger", Price: decimal.RequireFromString("9.99"), IsActive: true},
	}
	s.Require().NoError(s.products.UpsertProducts(s.ctx, again))

	all, err := s.products.ListProducts(s.ctx, true)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.True(all[0].Price.Equal(decimal.RequireFromString("13.49")))
}

func (s *RepositoryTestSuite) TestCreateOrder_StoresItemsAtomically() {
	order := s.newOrder(burger(2))
	s.Require().NoError(s.orders.CreateOrder(s.ctx, order, domain.CustomerContact{MessengerID: "psid-2", Phone: "0812345678"}))
	s.NotEmpty(order.ID)
	s.NotEmpty(order.CustomerID)

	stored, err := s.orders.GetOrderByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Items, 1)
	s.True(stored.TotalAmount.Equal(decimal.RequireFromString("19.98")))
	s.Equal("psid-2", stored.MessengerID)
}

func (s *RepositoryTestSuite) TestCreateOrder_FailedItemsLeaveNothing() {
	// Same id twice violates the primary key of order_items.
	order := s.newOrder(burger(1), burger(2))
	order.Items[0].ID = "2c0f4b1e-1111-4111-8111-111111111111"
	order.Items[1].ID = "2c0f4b1e-1111-4111-8111-111111111111"

	err := s.orders.CreateOrder(s.ctx, order, domain.CustomerContact{MessengerID: "psid-3"})
	s.Require().Error(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.OrderModel{}).Count(&count).Error)
	s.Zero(count)
}

func (s *RepositoryTestSuite) TestUpdateOrderStatus_DeliveredStampsAndRecordsHistory() {
	order := s.newOrder(burger(1))
	s.Require().NoError(s.orders.CreateOrder(s.ctx, order, domain.CustomerContact{MessengerID: "psid-4"}))

	updated, err := s.orders.UpdateOrderStatus(s.ctx, order.ID, domain.StatusDelivered, "left at door")
	s.Require().NoError(err)
	s.Equal(domain.StatusDelivered, updated.Status)
	s.NotNil(updated.DeliveredAt)

	var history []models.OrderStatusHistoryModel
	s.Require().NoError(s.db.Where("order_id = ?", order.ID).Find(&history).Error)
	s.Require().Len(history, 1)
	s.Equal(domain.StatusChangedByAdmin, history[0].ChangedBy)

	_, err = s.orders.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatus("lost"), "")
	s.ErrorIs(err, domain.ErrInvalidStatus)

	_, err = s.orders.UpdateOrderStatus(s.ctx, "7f7a2f4e-0000-4000-8000-000000000000", domain.StatusConfirmed, "")
	s.ErrorIs(err, domain.ErrOrderNotFound)
}

func (s *RepositoryTestSuite) TestReports() {
	delivered := s.newOrder(burger(3))
	s.Require().NoError(s.orders.CreateOrder(s.ctx, delivered, domain.CustomerContact{MessengerID: "psid-5"}))
	_, err := s.orders.UpdateOrderStatus(s.ctx, delivered.ID, domain.StatusDelivered, "")
	s.Require().NoError(err)

	pending := s.newOrder(burger(1))
	s.Require().NoError(s.orders.CreateOrder(s.ctx, pending, domain.CustomerContact{MessengerID: "psid-5"}))

	count, err := s.orders.CountOrders(s.ctx, domain.StatusPending, time.Time{})
	s.Require().NoError(err)
	s.EqualValues(1, count)

	amounts, err := s.orders.DeliveredOrdersSince(s.ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().Len(amounts, 1)
	s.True(amounts[0].TotalAmount.Equal(decimal.RequireFromString("29.97")))

	items, err := s.orders.DeliveredOrderItems(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(3, items[0].Quantity)

	byStatus, err := s.orders.GetOrders(s.ctx, domain.OrderFilter{Status: domain.StatusPending})
	s.Require().NoError(err)
	s.Require().Len(byStatus, 1)
	s.Equal(pending.ID, byStatus[0].ID)
}
