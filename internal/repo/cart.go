package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) CartTokenTaken(ctx context.Context, token string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Cart{}).Where("token = ?", token).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	if cart.Status == "" {
		cart.Status = models.CartOpen
	}
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(cart).Error
}

func (r *GormRepo) GetCartByToken(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// LockCart reads a cart and holds its row until the surrounding transaction
// ends, so line changes and checkout of one cart run one at a time.
func (r *GormRepo) LockCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", cartID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) LockCartByToken(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ?", token).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartItems returns the lines of a cart with their products, oldest first.
func (r *GormRepo) GetCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *GormRepo) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, id uint, qty uint) error {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseCart moves an open cart to closed. It reports false when the cart was
// no longer open, which means another checkout already claimed it.
func (r *GormRepo) CloseCart(ctx context.Context, cartID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND status = ?", cartID, models.CartOpen).
		Update("status", models.CartClosed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) CartHasProduct(ctx context.Context, cartID, productID uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
