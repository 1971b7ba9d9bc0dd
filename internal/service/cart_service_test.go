package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"tiendax/internal/entity"
)

func newCartFixture(t *testing.T) (*CartService, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewCartService(repo, NewActivityService(repo), 2000, 150, "5215512345678")
	return svc, repo
}

func seedProduct(t *testing.T, repo *fakeRepo, id uint, name string, price, discount float64) *entity.DbProduct {
	t.Helper()
	product := &entity.DbProduct{
		ID:       id,
		Name:     name,
		Price:    price,
		Discount: discount,
		Category: "labios",
	}
	if err := repo.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("seed product %d: %v", id, err)
	}
	return product
}

func TestShippingCost(t *testing.T) {
	svc, _ := newCartFixture(t)
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"below threshold", 1999.99, 150},
		{"exactly at threshold still pays", 2000, 150},
		{"just above threshold", 2000.01, 0},
		{"well above threshold", 5000, 0},
		{"empty cart", 0, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.ShippingCost(tt.subtotal); got != tt.want {
				t.Errorf("ShippingCost(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestAddItemMergesLines(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, "Labial Rojo", 299, 0)

	if err := svc.AddItem(ctx, 7, product, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.AddItem(ctx, 7, product, 3); err != nil {
		t.Fatalf("AddItem again: %v", err)
	}

	summary, err := svc.Summary(ctx, 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1 merged line", len(summary.Items))
	}
	if summary.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", summary.Items[0].Quantity)
	}
}

func TestAddItemCoercesQuantity(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, "Labial Rojo", 299, 0)

	if err := svc.AddItem(ctx, 7, product, 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	summary, err := svc.Summary(ctx, 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", summary.Items[0].Quantity)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, "Labial Rojo", 299, 0)

	if err := svc.AddItem(ctx, 7, product, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.SetQuantity(ctx, 7, product.ID, 0); err != nil {
		t.Fatalf("SetQuantity(0): %v", err)
	}
	summary, err := svc.Summary(ctx, 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(summary.Items))
	}

	if err := svc.SetQuantity(ctx, 7, product.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetQuantity on missing line: got %v, want ErrNotFound", err)
	}
}

func TestSummaryAppliesDiscounts(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	full := seedProduct(t, repo, 1, "Labial Rojo", 1000, 0)
	off := seedProduct(t, repo, 2, "Sombra Nude", 500, 20)

	if err := svc.AddItem(ctx, 7, full, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.AddItem(ctx, 7, off, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	summary, err := svc.Summary(ctx, 7)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	// 1000 + 2 * (500 * 0.8) = 1800, below the threshold so shipping applies.
	if summary.Subtotal != 1800 {
		t.Errorf("subtotal = %v, want 1800", summary.Subtotal)
	}
	if summary.Shipping != 150 {
		t.Errorf("shipping = %v, want 150", summary.Shipping)
	}
	if summary.Total != 1950 {
		t.Errorf("total = %v, want 1950", summary.Total)
	}
	if summary.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", summary.TotalItems)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, "Labial Rojo", 299, 0)

	if err := svc.AddItem(ctx, 7, product, 1); err != nil {
		t.Fatalf("AddItem user 7: %v", err)
	}
	if err := svc.AddItem(ctx, 8, product, 4); err != nil {
		t.Fatalf("AddItem user 8: %v", err)
	}

	s7, _ := svc.Summary(ctx, 7)
	s8, _ := svc.Summary(ctx, 8)
	if s7.TotalItems != 1 || s8.TotalItems != 4 {
		t.Errorf("items = %d/%d, want 1/4", s7.TotalItems, s8.TotalItems)
	}
}

func TestCheckout(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	product := seedProduct(t, repo, 1, "Labial Rojo", 1500, 0)
	user := &entity.DbUser{ID: 7, Name: "Ana", Email: "ana@example.com"}

	if err := svc.AddItem(ctx, user.ID, product, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	resp, err := svc.Checkout(ctx, user, &entity.CheckoutRequest{
		CustomerName:  "Ana García",
		CustomerPhone: "5511223344",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if resp.Order.Total != 3000 {
		t.Errorf("total = %v, want 3000 (free shipping above threshold)", resp.Order.Total)
	}
	if resp.Order.Shipping != 0 {
		t.Errorf("shipping = %v, want 0", resp.Order.Shipping)
	}
	if resp.Order.Status != entity.OrderStatusSubmitted {
		t.Errorf("status = %q", resp.Order.Status)
	}
	if len(resp.Order.Lines) != 1 || resp.Order.Lines[0].Quantity != 2 {
		t.Errorf("lines = %+v", resp.Order.Lines)
	}

	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/5215512345678?text=") {
		t.Errorf("WhatsAppURL = %q", resp.WhatsAppURL)
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(resp.WhatsAppURL, "https://wa.me/5215512345678?text="))
	if err != nil {
		t.Fatalf("QueryUnescape: %v", err)
	}
	if decoded != resp.Message {
		t.Error("URL text does not match rendered message")
	}
	for _, want := range []string{"Ana García", "5511223344", "Labial Rojo x2", "*Envío:* Gratis", "*Total:* $3000.00"} {
		if !strings.Contains(resp.Message, want) {
			t.Errorf("message missing %q:\n%s", want, resp.Message)
		}
	}

	// Checkout clears the cart.
	summary, err := svc.Summary(ctx, user.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Errorf("cart not cleared, %d lines left", len(summary.Items))
	}
}

func TestCheckoutValidation(t *testing.T) {
	svc, repo := newCartFixture(t)
	ctx := context.Background()
	user := &entity.DbUser{ID: 7, Name: "Ana"}

	// Empty cart.
	if _, err := svc.Checkout(ctx, user, &entity.CheckoutRequest{CustomerName: "Ana"}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty cart: got %v, want ErrValidation", err)
	}

	product := seedProduct(t, repo, 1, "Labial Rojo", 100, 0)
	if err := svc.AddItem(ctx, user.ID, product, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// Blank name.
	if _, err := svc.Checkout(ctx, user, &entity.CheckoutRequest{CustomerName: "   "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: got %v, want ErrValidation", err)
	}
}
