package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   uint         `gorm:"primaryKey"                        json:"id"`
	Name CategoryName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Slug string       `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug"`
}

type Product struct {
	ID         uint            `gorm:"primaryKey"                            json:"id"`
	CategoryID uint            `gorm:"index;not null"                        json:"category_id"`
	Category   *Category       `gorm:"constraint:OnDelete:CASCADE"           json:"-"`
	Name       string          `gorm:"type:varchar(255);not null"            json:"name"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(8,2);not null"            json:"unit_price"`
	Image      string          `gorm:"type:varchar(255);not null"            json:"image"`
	Slug       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey"                                  json:"-"`
	Token     string     `gorm:"type:varchar(36);uniqueIndex;not null"       json:"cart_id"`
	Status    CartStatus `gorm:"type:varchar(16);not null;default:open;index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"last_modified"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE"                 json:"items,omitempty"`
}

// CartItem carries no price: a line is always valued at the product's
// current unit price.
type CartItem struct {
	ID        uint      `gorm:"primaryKey"                     json:"id"`
	CartID    uint      `gorm:"index;not null"                 json:"-"`
	ProductID uint      `gorm:"index;not null"                 json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:RESTRICT"   json:"product"`
	Quantity  uint      `gorm:"not null;check:quantity > 0"    json:"quantity"`
	Variant   string    `gorm:"type:varchar(16);not null;default:''" json:"size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified_at"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type Order struct {
	ID          uint                `gorm:"primaryKey"                            json:"-"`
	Number      string              `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_number"`
	TotalPrice  decimal.NullDecimal `gorm:"type:numeric(10,2)"                    json:"total_price"`
	Status      OrderStatus         `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	DateOrdered time.Time           `gorm:"autoCreateTime"                        json:"date_ordered"`
	Email       string              `gorm:"type:varchar(254);not null"            json:"email"`
	Phone       string              `gorm:"type:varchar(20);not null"             json:"phone"`
	FirstName   string              `gorm:"type:varchar(100);not null"            json:"first_name"`
	LastName    string              `gorm:"type:varchar(100);not null"            json:"last_name"`
	Street      string              `gorm:"type:varchar(255);not null"            json:"street"`
	Suburb      string              `gorm:"type:varchar(100);not null"            json:"suburb"`
	State       string              `gorm:"type:varchar(3);not null"              json:"state"`
	Postcode    string              `gorm:"type:varchar(4);not null"              json:"postcode"`
	CartToken   string              `gorm:"type:varchar(36);index;not null"       json:"-"`
	Items       []OrderItem         `gorm:"constraint:OnDelete:CASCADE"           json:"items"`
}

// OrderItem.UnitPrice is the product price captured at checkout and is never
// recomputed.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                   json:"id"`
	OrderID   uint            `gorm:"index;not null"               json:"-"`
	ProductID uint            `gorm:"index;not null"               json:"product_id"`
	Product   Product         `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(8,2);not null"   json:"unit_price"`
	Quantity  uint            `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Variant   string          `gorm:"type:varchar(16);not null;default:''" json:"size,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
