package service

import (
	"bytes"
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

func setupInvoiceServiceTest(t *testing.T) (*InvoiceService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:invoice_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewInvoiceService(nil, repository.NewOrderRepository(db)), db
}

func TestRenderOrderInvoice(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	order := models.Order{
		OrderNo:        "NB20260901000001",
		UserID:         1,
		Status:         constants.OrderStatusDelivered,
		Currency:       constants.SiteCurrency,
		SubtotalAmount: moneyFromInt(3300),
		DiscountAmount: moneyFromInt(500),
		TotalAmount:    moneyFromInt(2800),
		CouponCode:     "SAVE500",
		RecipientName:  "Asha Verma",
		RecipientEmail: "asha@example.com",
		RecipientPhone: "9876543210",
		Street:         "12 Brass Market Road",
		City:           "Moradabad",
		Zip:            "244001",
		Country:        "India",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   1,
		ProductName: "Hanging Brass Lamp",
		UnitPrice:   moneyFromInt(3300),
		Quantity:    1,
		TotalPrice:  moneyFromInt(3300),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	content, filename, err := svc.RenderOrderInvoice(order.ID, 1)
	if err != nil {
		t.Fatalf("RenderOrderInvoice error: %v", err)
	}
	if filename != "invoice-NB20260901000001.pdf" {
		t.Fatalf("unexpected filename: %s", filename)
	}
	if len(content) == 0 {
		t.Fatalf("expected non-empty pdf content")
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Fatalf("expected pdf magic header, got %q", content[:4])
	}
}

func TestRenderOrderInvoiceScopedToOwner(t *testing.T) {
	svc, db := setupInvoiceServiceTest(t)
	order := models.Order{
		OrderNo:        "NB20260901000002",
		UserID:         1,
		Status:         constants.OrderStatusProcessing,
		Currency:       constants.SiteCurrency,
		TotalAmount:    moneyFromInt(1000),
		RecipientName:  "Asha Verma",
		RecipientEmail: "asha@example.com",
		RecipientPhone: "9876543210",
		Street:         "12 Brass Market Road",
		City:           "Moradabad",
		Zip:            "244001",
		Country:        "India",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, _, err := svc.RenderOrderInvoice(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}
