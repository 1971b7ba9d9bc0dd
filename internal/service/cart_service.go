package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// CartService owns per-user carts and the WhatsApp checkout handoff.
type CartService struct {
	repo              model.Repository
	activity          *ActivityService
	freeShippingAbove float64
	flatShippingFee   float64
	whatsAppNumber    string
}

func NewCartService(repo model.Repository, activity *ActivityService, freeShippingAbove, flatShippingFee float64, whatsAppNumber string) *CartService {
	return &CartService{
		repo:              repo,
		activity:          activity,
		freeShippingAbove: freeShippingAbove,
		flatShippingFee:   flatShippingFee,
		whatsAppNumber:    whatsAppNumber,
	}
}

// ShippingCost returns the shipping fee for a subtotal. Shipping is free
// only strictly above the threshold; a subtotal equal to it still pays.
func (s *CartService) ShippingCost(subtotal float64) float64 {
	if subtotal > s.freeShippingAbove {
		return 0
	}
	return s.flatShippingFee
}

// AddItem puts a product in the user's cart, merging with an existing line
// for the same product. Quantities below one are coerced to one.
func (s *CartService) AddItem(ctx context.Context, userID uint, product *entity.DbProduct, quantity int) error {
	if product == nil {
		return ErrNotFound
	}
	if quantity < 1 {
		quantity = 1
	}
	existing, err := s.repo.GetCartItem(ctx, userID, product.ID)
	if err == nil {
		return s.repo.UpdateCartItemQuantity(ctx, userID, product.ID, existing.Quantity+quantity)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	item := &entity.DbCartItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  product.ImageURL,
		Shade:     product.Shade,
		Discount:  product.Discount,
		Quantity:  quantity,
	}
	return s.repo.CreateCartItem(ctx, item)
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}
	if err := s.repo.UpdateCartItemQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RemoveItem deletes one line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if err := s.repo.DeleteCartItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}

// Summary returns the cart lines with totals recomputed from scratch.
func (s *CartService) Summary(ctx context.Context, userID uint) (*entity.CartSummary, error) {
	items, err := s.repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := &entity.CartSummary{Items: items}
	for i := range items {
		summary.TotalItems += items[i].Quantity
		summary.Subtotal += items[i].LineTotal()
	}
	summary.Shipping = s.ShippingCost(summary.Subtotal)
	summary.Total = summary.Subtotal + summary.Shipping
	return summary, nil
}

// Checkout snapshots the cart into an order, renders the WhatsApp handoff
// message and clears the cart. The order is submitted by the customer
// opening the returned wa.me link.
func (s *CartService) Checkout(ctx context.Context, user *entity.DbUser, req *entity.CheckoutRequest) (*entity.CheckoutResponse, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrValidation
	}
	summary, err := s.Summary(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrValidation
	}

	lines := make(entity.OrderLines, 0, len(summary.Items))
	for i := range summary.Items {
		item := &summary.Items[i]
		lines = append(lines, entity.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Shade:     item.Shade,
			Quantity:  item.Quantity,
			UnitPrice: item.EffectiveUnitPrice(),
			Subtotal:  item.LineTotal(),
		})
	}
	order := &entity.DbOrder{
		UserID:        user.ID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Lines:         lines,
		Subtotal:      summary.Subtotal,
		Shipping:      summary.Shipping,
		Total:         summary.Total,
		Status:        entity.OrderStatusSubmitted,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.repo.ClearCart(ctx, user.ID); err != nil {
		return nil, err
	}

	message := s.renderOrderMessage(order)
	s.activity.Log(ctx, user.ID, user.Name, "Pedido enviado", fmt.Sprintf("Pedido #%d por $%.2f", order.ID, order.Total))
	return &entity.CheckoutResponse{
		Order:       *order,
		Message:     message,
		WhatsAppURL: "https://wa.me/" + s.whatsAppNumber + "?text=" + url.QueryEscape(message),
	}, nil
}

// ListOrders returns stored orders, optionally filtered to one user.
func (s *CartService) ListOrders(ctx context.Context, params *entity.OrderQuery) (*entity.OrderListResponse, error) {
	orders, meta, err := s.repo.ListOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	return &entity.OrderListResponse{Orders: orders, Meta: meta}, nil
}

func (s *CartService) renderOrderMessage(order *entity.DbOrder) string {
	var b strings.Builder
	b.WriteString("¡Hola! Me gustaría hacer el siguiente pedido:\n\n")
	fmt.Fprintf(&b, "*Nombre:* %s\n", order.CustomerName)
	if order.CustomerPhone != "" {
		fmt.Fprintf(&b, "*Teléfono:* %s\n", order.CustomerPhone)
	}
	b.WriteString("\n*Pedido:*\n")
	for _, line := range order.Lines {
		name := line.Name
		if line.Shade != "" {
			name += " (" + line.Shade + ")"
		}
		fmt.Fprintf(&b, "• %s x%d - $%.2f\n", name, line.Quantity, line.Subtotal)
	}
	fmt.Fprintf(&b, "\n*Subtotal:* $%.2f\n", order.Subtotal)
	if order.Shipping == 0 {
		b.WriteString("*Envío:* Gratis\n")
	} else {
		fmt.Fprintf(&b, "*Envío:* $%.2f\n", order.Shipping)
	}
	fmt.Fprintf(&b, "*Total:* $%.2f", order.Total)
	return b.String()
}
