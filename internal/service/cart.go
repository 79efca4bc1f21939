package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/session"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Events   events.Publisher
	// NewToken overrides cart token generation; uuid v4 when nil.
	NewToken func() string
}

type AddItemInput struct {
	ProductID uint
	Quantity  int
	Variant   string
}

type CartLine struct {
	Item      models.CartItem
	LineTotal decimal.Decimal
}

type CartView struct {
	Cart  *models.Cart
	Lines []CartLine
	Total decimal.Decimal
	Empty bool
}

// sessionCart resolves the session's cart token regardless of cart status.
// It returns nil when the session holds no token or the token is stale.
func (s *CartService) sessionCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	token, err := s.Sessions.Get(ctx, sessionID, session.CartTokenKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if token == "" {
		return nil, nil
	}
	cart, err := s.Repo.GetCartByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) openCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.sessionCart(ctx, sessionID)
	if err != nil || cart == nil {
		return nil, err
	}
	if cart.Status != models.CartOpen {
		return nil, nil
	}
	return cart, nil
}

// EnsureCart returns the session's open cart, creating and binding a new one
// when the session has none or its cart has been closed.
func (s *CartService) EnsureCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.ensure")

	unlock, err := s.Sessions.Lock(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrLockTimeout) {
			return nil, fmt.Errorf("session busy: %w", ErrConflict)
		}
		return nil, err
	}
	defer unlock()

	cart, err := s.openCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{}
	err = withFreshToken(ctx, tokenGenerator(s.NewToken), s.Repo.CartTokenTaken, func(token string) error {
		*cart = models.Cart{Token: token, Status: models.CartOpen}
		return s.Repo.CreateCart(ctx, cart)
	})
	if err != nil {
		return nil, translate(err, "create cart")
	}

	if err := s.Sessions.Set(ctx, sessionID, session.CartTokenKey, cart.Token); err != nil {
		return nil, fmt.Errorf("bind cart to session: %w", err)
	}

	l.Info("cart_created", "cart_token", cart.Token)
	publish(ctx, s.Events, cart.Token, map[string]any{
		"type":      "cart_created",
		"cartToken": cart.Token,
	})
	return cart, nil
}

// CurrentCart is the read-only counterpart of EnsureCart.
func (s *CartService) CurrentCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.openCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("cart: %w", ErrNotFound)
	}
	return cart, nil
}

// AddItem always appends a new line, even when the same product and size
// are already in the cart.
func (s *CartService) AddItem(ctx context.Context, sessionID string, in AddItemInput) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item")

	if in.Quantity <= 0 {
		return nil, newValidationError("quantity", "quantity must be greater than zero")
	}
	if in.ProductID == 0 {
		return nil, newValidationError("product_id", "product_id is required")
	}

	product, err := s.Repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, translate(err, "product")
	}
	kind := models.VariantNone
	if product.Category != nil {
		kind = product.Category.Name.Variant()
	}
	variant, err := models.ResolveVariant(kind, in.Variant)
	if err != nil {
		return nil, newValidationError("size", err.Error())
	}

	cart, err := s.EnsureCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  uint(in.Quantity),
		Variant:   variant,
	}
	err = s.withOpenCart(ctx, cart.ID, func(tx *repo.GormRepo) error {
		return translate(tx.AddCartItem(ctx, item), "add cart item")
	})
	if err != nil {
		return nil, err
	}
	item.Product = *product

	l.Info("cart_item_added", "cart_token", cart.Token, "item_id", item.ID, "product_id", product.ID)
	publish(ctx, s.Events, cart.Token, map[string]any{
		"type":      "cart_item_added",
		"cartToken": cart.Token,
		"itemID":    item.ID,
		"productID": product.ID,
		"quantity":  item.Quantity,
		"size":      item.Variant,
	})
	return item, nil
}

// withOpenCart runs fn in a transaction holding the cart row. It fails with
// ErrConflict when the cart is no longer open.
func (s *CartService) withOpenCart(ctx context.Context, cartID uint, fn func(tx *repo.GormRepo) error) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.LockCart(ctx, cartID)
		if err != nil {
			return translate(err, "cart")
		}
		if cart.Status != models.CartOpen {
			return fmt.Errorf("cart is %s: %w", cart.Status, ErrConflict)
		}
		return fn(tx)
	})
}

// ownedItem loads a line and checks that it belongs to the session's cart
// and that the cart can still change.
func (s *CartService) ownedItem(ctx context.Context, sessionID string, itemID uint) (*models.CartItem, *models.Cart, error) {
	item, err := s.Repo.GetCartItem(ctx, itemID)
	if err != nil {
		return nil, nil, translate(err, "cart item")
	}
	cart, err := s.sessionCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if cart == nil || cart.ID != item.CartID {
		return nil, nil, fmt.Errorf("cart item %d: %w", itemID, ErrPermissionDenied)
	}
	if cart.Status != models.CartOpen {
		return nil, nil, fmt.Errorf("cart is %s: %w", cart.Status, ErrConflict)
	}
	return item, cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, itemID uint) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove_item")

	item, cart, err := s.ownedItem(ctx, sessionID, itemID)
	if err != nil {
		return err
	}
	err = s.withOpenCart(ctx, cart.ID, func(tx *repo.GormRepo) error {
		return translate(tx.DeleteCartItem(ctx, item.ID), "cart item")
	})
	if err != nil {
		return err
	}

	l.Info("cart_item_removed", "cart_token", cart.Token, "item_id", item.ID)
	publish(ctx, s.Events, cart.Token, map[string]any{
		"type":      "cart_item_removed",
		"cartToken": cart.Token,
		"itemID":    item.ID,
		"productID": item.ProductID,
	})
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, itemID uint, quantity int) error {
	l := logging.FromContext(ctx).With("svc", "cart.update_quantity")

	if quantity <= 0 {
		return newValidationError("quantity", "quantity must be greater than zero")
	}
	item, cart, err := s.ownedItem(ctx, sessionID, itemID)
	if err != nil {
		return err
	}
	err = s.withOpenCart(ctx, cart.ID, func(tx *repo.GormRepo) error {
		return translate(tx.UpdateCartItemQuantity(ctx, item.ID, uint(quantity)), "cart item")
	})
	if err != nil {
		return err
	}

	l.Info("cart_item_updated", "cart_token", cart.Token, "item_id", item.ID, "quantity", quantity)
	publish(ctx, s.Events, cart.Token, map[string]any{
		"type":      "cart_item_updated",
		"cartToken": cart.Token,
		"itemID":    item.ID,
		"quantity":  quantity,
	})
	return nil
}

// Total prices every line at the product's current unit price.
func (s *CartService) Total(ctx context.Context, cart *models.Cart) (decimal.Decimal, error) {
	if cart == nil {
		return decimal.Zero, nil
	}
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return models.CartTotal(items), nil
}

// ContainsProduct accepts a nil cart, which contains nothing.
func (s *CartService) ContainsProduct(ctx context.Context, cart *models.Cart, productID uint) (bool, error) {
	if cart == nil {
		return false, nil
	}
	return s.Repo.CartHasProduct(ctx, cart.ID, productID)
}

func (s *CartService) ViewCart(ctx context.Context, sessionID string) (*CartView, error) {
	cart, err := s.openCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartView{Total: decimal.Zero, Empty: true}, nil
	}

	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, CartLine{Item: it, LineTotal: it.LineTotal()})
	}
	return &CartView{
		Cart:  cart,
		Lines: lines,
		Total: models.CartTotal(items),
		Empty: len(items) == 0,
	}, nil
}
