package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tienda-pos/internal/domain"
	"tienda-pos/internal/pos"
	"tienda-pos/internal/repository"

	"github.com/google/uuid"
)

func seedProduct(repo *mockProductRepository, name string, price int64) *domain.Product {
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.products[product.ID] = product
	return product
}

func TestPOSService_AddAndRemove(t *testing.T) {
	productRepo := newMockProductRepository()
	svc := NewPOSService(pos.NewSessionManager(), productRepo)
	ctx := context.Background()

	burger := seedProduct(productRepo, "Burger", 5000)
	fries := seedProduct(productRepo, "Fries", 2000)

	session, err := svc.OpenSession(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.AddToCart(ctx, session.ID, burger.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 5000 {
		t.Errorf("expected total 5000, got %d", view.Total)
	}

	view, err = svc.AddToCart(ctx, session.ID, fries.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 7000 || len(view.Lines) != 2 {
		t.Errorf("unexpected cart view: total=%d lines=%d", view.Total, len(view.Lines))
	}

	view, err = svc.RemoveFromCart(ctx, session.ID, burger.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 2000 || len(view.Lines) != 1 {
		t.Errorf("unexpected cart view after remove: total=%d lines=%d", view.Total, len(view.Lines))
	}
}

func TestPOSService_AddUnknownProduct(t *testing.T) {
	svc := NewPOSService(pos.NewSessionManager(), newMockProductRepository())
	ctx := context.Background()

	session, _ := svc.OpenSession(ctx)

	if _, err := svc.AddToCart(ctx, session.ID, uuid.New()); !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPOSService_UnknownSession(t *testing.T) {
	productRepo := newMockProductRepository()
	svc := NewPOSService(pos.NewSessionManager(), productRepo)
	ctx := context.Background()

	burger := seedProduct(productRepo, "Burger", 5000)

	if _, err := svc.AddToCart(ctx, uuid.New(), burger.ID); !errors.Is(err, pos.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Checkout(ctx, uuid.New()); !errors.Is(err, pos.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPOSService_CheckoutAndReceipt(t *testing.T) {
	productRepo := newMockProductRepository()
	svc := NewPOSService(pos.NewSessionManager(), productRepo)
	ctx := context.Background()

	burger := seedProduct(productRepo, "Burger", 5000)

	session, _ := svc.OpenSession(ctx)

	if _, err := svc.Checkout(ctx, session.ID); !errors.Is(err, pos.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart on empty cart, got %v", err)
	}

	if _, err := svc.AddToCart(ctx, session.ID, burger.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddToCart(ctx, session.ID, burger.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sale, err := svc.Checkout(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.Total != 10000 || len(sale.Items) != 1 {
		t.Errorf("unexpected sale: total=%d items=%d", sale.Total, len(sale.Items))
	}

	view, err := svc.ViewCart(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("expected empty cart after checkout, got %d lines", len(view.Lines))
	}

	receipt, err := svc.Receipt(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(receipt, "Burger (2)") || !strings.Contains(receipt, "Total: Gs. 10000") {
		t.Errorf("unexpected receipt:\n%s", receipt)
	}
}

// A price edit after the sale was captured must not change the sale or its
// receipt.
func TestPOSService_SaleSurvivesPriceChange(t *testing.T) {
	productRepo := newMockProductRepository()
	svc := NewPOSService(pos.NewSessionManager(), productRepo)
	ctx := context.Background()

	burger := seedProduct(productRepo, "Burger", 5000)

	session, _ := svc.OpenSession(ctx)
	if _, err := svc.AddToCart(ctx, session.ID, burger.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sale, err := svc.Checkout(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	productRepo.products[burger.ID].Price = 9999

	if sale.Total != 5000 {
		t.Errorf("sale total changed after price edit: %d", sale.Total)
	}
	receipt, err := svc.Receipt(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(receipt, "Total: Gs. 5000") {
		t.Errorf("receipt changed after price edit:\n%s", receipt)
	}
}

func TestPOSService_ReceiptBeforeAnySale(t *testing.T) {
	svc := NewPOSService(pos.NewSessionManager(), newMockProductRepository())
	ctx := context.Background()

	session, _ := svc.OpenSession(ctx)

	if _, err := svc.Receipt(ctx, session.ID); !errors.Is(err, pos.ErrNoSale) {
		t.Errorf("expected ErrNoSale, got %v", err)
	}
}

func TestPOSService_CloseSession(t *testing.T) {
	svc := NewPOSService(pos.NewSessionManager(), newMockProductRepository())
	ctx := context.Background()

	session, _ := svc.OpenSession(ctx)

	if err := svc.CloseSession(ctx, session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ViewCart(ctx, session.ID); !errors.Is(err, pos.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after close, got %v", err)
	}
}
