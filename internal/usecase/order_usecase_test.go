package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	orderdto "github.com/LavaJover/shvark-foodbot-service/internal/usecase/dto/order"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderUsecase(t *testing.T, repo *fakeOrderRepo, pub OrderEventPublisher) (*DefaultOrderUsecase, *metrics.BotMetrics) {
	t.Helper()
	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	uc, err := NewDefaultOrderUsecase(repo, pub, Topics{Orders: "order-events", Failures: "order-failures"}, m, logger.NewNoOp())
	require.NoError(t, err)
	uc.now = func() time.Time { return time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC) }
	return uc, m
}

func cartInput() *orderdto.PlaceOrderInput {
	return &orderdto.PlaceOrderInput{
		MessengerID:     "psid-1",
		DeliveryAddress: "55 Rama IV Rd",
		CustomerPhone:   "0899999999",
		Currency:        "thb",
		Notes:           "no chili",
		Source:          orderdto.SourceCart,
		Items: []orderdto.ItemInput{
			{Name: "Pad Thai", Quantity: 2, UnitPrice: decimal.RequireFromString("120.50")},
			{Code: "f008", Name: "Chocolate Cake", Quantity: 3, UnitPrice: decimal.RequireFromString("6.99")},
		},
	}
}

func TestPlaceOrder_TotalsFromItems(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	uc, m := newOrderUsecase(t, repo, pub)

	order, err := uc.PlaceOrder(context.Background(), cartInput())
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("261.97")))
	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.TotalPrice)
	}
	assert.True(t, sum.Equal(order.TotalAmount))

	assert.Equal(t, "CART", order.Items[0].ProductCode)
	assert.Equal(t, "F008", order.Items[1].ProductCode)
	assert.Equal(t, "THB", order.Currency)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, domain.PaymentMethodCashOnDelivery, order.PaymentMethod)
	assert.Equal(t, "no chili", order.Notes)
	assert.Equal(t, uc.now().Add(45*time.Minute), order.EstimatedDeliveryTime)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20261014-[0-9A-Z]{6}$`), order.OrderNumber)

	require.Len(t, repo.contacts, 1)
	assert.Equal(t, "55 Rama IV Rd", repo.contacts[0].Address)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.ChangeInsert, pub.events[0].EventType)
	assert.Equal(t, "order-events", pub.topics[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlacedTotal.WithLabelValues("cart", "THB")))
}

func TestPlaceOrder_DefaultsToUSD(t *testing.T) {
	uc, _ := newOrderUsecase(t, &fakeOrderRepo{}, nil)
	order, err := uc.PlaceOrder(context.Background(), &orderdto.PlaceOrderInput{
		MessengerID: "psid-2",
		Items:       []orderdto.ItemInput{{Code: "F001", Name: "Margherita Pizza", Quantity: 1, UnitPrice: decimal.RequireFromString("12.99")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", order.Currency)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("12.99")))
}

func TestPlaceOrder_Rejects(t *testing.T) {
	uc, _ := newOrderUsecase(t, &fakeOrderRepo{}, nil)
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, &orderdto.PlaceOrderInput{MessengerID: "psid-1"})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = uc.PlaceOrder(ctx, &orderdto.PlaceOrderInput{Items: cartInput().Items})
	assert.ErrorIs(t, err, domain.ErrMissingParticipant)

	bad := cartInput()
	bad.Items[0].Quantity = 0
	_, err = uc.PlaceOrder(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPlaceOrder_StoreErrorPropagates(t *testing.T) {
	storeErr := &domain.DataAccessError{Op: "repository.CreateOrder", Cause: domain.CauseNetwork, Err: errors.New("dial tcp: timeout")}
	pub := &fakePublisher{}
	uc, _ := newOrderUsecase(t, &fakeOrderRepo{createErr: storeErr}, pub)

	_, err := uc.PlaceOrder(context.Background(), cartInput())
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, pub.events)
}

func TestReportFailure_PublishesUnsavedOrder(t *testing.T) {
	pub := &fakePublisher{}
	uc, m := newOrderUsecase(t, &fakeOrderRepo{}, pub)

	storeErr := &domain.DataAccessError{Op: "repository.CreateOrder", Code: "42P01", Cause: domain.CauseMissingTable, Err: errors.New("relation does not exist")}
	uc.ReportFailure(context.Background(), cartInput(), storeErr)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrderPersistFailures.WithLabelValues("missing_table")))
	require.Len(t, pub.failures, 1)
	failure := pub.failures[0]
	assert.Equal(t, "order-failures", pub.topics[0])
	assert.Equal(t, domain.CauseMissingTable, failure.Cause)
	assert.Equal(t, "261.97", failure.TotalAmount)
	assert.Len(t, failure.Items, 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	uc, _ := newOrderUsecase(t, repo, pub)
	ctx := context.Background()

	order, err := uc.UpdateOrderStatus(ctx, &orderdto.UpdateStatusInput{OrderID: "o-1", Status: " Delivered ", Note: "handed over"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, order.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.ChangeUpdate, pub.events[0].EventType)

	_, err = uc.UpdateOrderStatus(ctx, &orderdto.UpdateStatusInput{OrderID: "o-1", Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.UpdateOrderStatus(ctx, &orderdto.UpdateStatusInput{OrderID: "missing", Status: "confirmed"})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrders_RejectsUnknownStatus(t *testing.T) {
	uc, _ := newOrderUsecase(t, &fakeOrderRepo{}, nil)
	_, err := uc.GetOrders(context.Background(), domain.OrderFilter{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
