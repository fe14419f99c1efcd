package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderService(repository.NewOrderRepository(db), nil), db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        fmt.Sprintf("NB%d%d", time.Now().UnixNano(), userID),
		UserID:         userID,
		Status:         status,
		Currency:       constants.SiteCurrency,
		SubtotalAmount: moneyFromInt(1000),
		TotalAmount:    moneyFromInt(1000),
		RecipientName:  "Asha Verma",
		RecipientEmail: "asha@example.com",
		RecipientPhone: "9876543210",
		Street:         "12 Brass Market Road",
		City:           "Moradabad",
		Zip:            "244001",
		Country:        "India",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestUpdateOrderStatusHappyPath(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusProcessing)

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("UpdateOrderStatus to shipped error: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", updated.Status)
	}

	updated, err = svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("UpdateOrderStatus to delivered error: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}
}

func TestUpdateOrderStatusRejectsInvalidTransition(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusDelivered)

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for delivered->shipped, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for delivered->cancelled, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, "refunded"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for unknown status, got %v", err)
	}
}

func TestUpdateOrderStatusSameStatusNoop(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusProcessing)

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.UpdateOrderStatus(9999, constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusProcessing)

	cancelled, err := svc.CancelOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at to be set")
	}
}

func TestCancelOrderShippedRejected(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusShipped)

	if _, err := svc.CancelOrder(order.ID, 1); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected ErrOrderCancelNotAllowed, got %v", err)
	}
}

func TestCancelOrderScopedToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusProcessing)

	if _, err := svc.CancelOrder(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := createTestOrder(t, db, 1, constants.OrderStatusProcessing)

	if _, err := svc.GetOrder(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
	got, err := svc.GetOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if got.OrderNo != order.OrderNo {
		t.Fatalf("expected order %s, got %s", order.OrderNo, got.OrderNo)
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusShipped, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
		{constants.OrderStatusProcessing, constants.OrderStatusProcessing, true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.current, tc.target); got != tc.want {
			t.Fatalf("transition %s -> %s: want %v got %v", tc.current, tc.target, tc.want, got)
		}
	}
}
