package models

import "strings"

type CategoryName string

const (
	CategoryTShirts CategoryName = "T-Shirts"
	CategoryMugs    CategoryName = "Mugs"
)

var CategoryNames = []CategoryName{CategoryTShirts, CategoryMugs}

func (n CategoryName) Valid() bool {
	for _, c := range CategoryNames {
		if c == n {
			return true
		}
	}
	return false
}

// Variant reports which selectable option a product in this category needs.
func (n CategoryName) Variant() VariantKind {
	if n == CategoryTShirts {
		return VariantSize
	}
	return VariantNone
}

type VariantKind int

const (
	VariantNone VariantKind = iota
	VariantSize
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXLarge Size = "xlarge"
)

var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}

func ParseSize(s string) (Size, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sz := range Sizes {
		if string(sz) == s {
			return sz, true
		}
	}
	return "", false
}

type CartStatus string

const (
	CartOpen      CartStatus = "open"
	CartClosed    CartStatus = "closed"
	CartAbandoned CartStatus = "abandoned"
)

// closed and abandoned are terminal.
func (s CartStatus) CanTransition(to CartStatus) bool {
	return s == CartOpen && (to == CartClosed || to == CartAbandoned)
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderPending:
		return to == OrderShipped
	case OrderShipped:
		return to == OrderDelivered
	default:
		return false
	}
}
