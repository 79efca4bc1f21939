package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/session"
	"github.com/shopspring/decimal"
)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Events   events.Publisher
	// NewToken overrides order number generation; uuid v4 when nil.
	NewToken func() string
}

type CheckoutInput struct {
	Customer CustomerDetails `json:"customer"`
	Payment  PaymentDetails  `json:"payment"`
}

// Checkout turns the session's open cart into a pending order. Order, order
// items, total and the cart's closing commit together or not at all.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout")

	if err := validateStruct(&in.Customer, &in.Payment); err != nil {
		return nil, err
	}

	token, err := s.Sessions.Get(ctx, sessionID, session.CartTokenKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if token == "" {
		return nil, fmt.Errorf("cart: %w", ErrNotFound)
	}

	c := in.Customer
	order := &models.Order{}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.LockCartByToken(ctx, token)
		if err != nil {
			return translate(err, "cart")
		}
		if cart.Status != models.CartOpen {
			return fmt.Errorf("cart is %s: %w", cart.Status, ErrConflict)
		}

		items, err := tx.GetCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return newValidationError("items", "nothing to order")
		}

		err = withFreshToken(ctx, tokenGenerator(s.NewToken), tx.OrderNumberTaken, func(number string) error {
			*order = models.Order{
				Number:    number,
				Status:    models.OrderPending,
				Email:     strings.TrimSpace(c.Email),
				Phone:     strings.TrimSpace(c.Phone),
				FirstName: strings.TrimSpace(c.FirstName),
				LastName:  strings.TrimSpace(c.LastName),
				Street:    strings.TrimSpace(c.Street),
				Suburb:    strings.TrimSpace(c.Suburb),
				State:     strings.ToUpper(strings.TrimSpace(c.State)),
				Postcode:  strings.TrimSpace(c.Postcode),
				CartToken: cart.Token,
			}
			return tx.CreateOrder(ctx, order)
		})
		if err != nil {
			return translate(err, "create order")
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Product:   it.Product,
				UnitPrice: it.Product.UnitPrice,
				Quantity:  it.Quantity,
				Variant:   it.Variant,
			})
		}
		if err := tx.CreateOrderItems(ctx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		total := models.OrderTotal(orderItems)
		if err := tx.SetOrderTotal(ctx, order.ID, total); err != nil {
			return fmt.Errorf("set order total: %w", err)
		}
		order.TotalPrice = decimal.NewNullDecimal(total)
		order.Items = orderItems

		closed, err := tx.CloseCart(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("close cart: %w", err)
		}
		if !closed {
			return fmt.Errorf("cart already checked out: %w", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_number", order.Number, "cart_token", order.CartToken, "total", order.TotalPrice.Decimal.StringFixed(2))
	publish(ctx, s.Events, order.CartToken, map[string]any{
		"type":        "order_created",
		"orderNumber": order.Number,
		"cartToken":   order.CartToken,
		"total":       order.TotalPrice.Decimal.StringFixed(2),
		"items":       len(order.Items),
	})
	return order, nil
}

// PurchaseConfirmed loads an order for its confirmation page and unbinds the
// checked-out cart from the session, so the next add starts a fresh cart.
func (s *CheckoutService) PurchaseConfirmed(ctx context.Context, sessionID, orderNumber string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.confirmed")

	order, err := s.Repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, translate(err, "order")
	}

	token, err := s.Sessions.Get(ctx, sessionID, session.CartTokenKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if token != "" && token == order.CartToken {
		if err := s.Sessions.Delete(ctx, sessionID, session.CartTokenKey); err != nil {
			return nil, fmt.Errorf("clear session cart: %w", err)
		}
		l.Info("session_cart_cleared", "order_number", order.Number)
	}
	return order, nil
}
