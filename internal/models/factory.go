package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

const DefaultProductImage = "static/images/Image_not_available.png"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidPrice    = errors.New("price must be between 0 and 999999.99 with at most two decimal places")
	ErrSizeRequired    = errors.New("size is required for this product")
	ErrUnknownSize     = errors.New("unknown size")
	ErrSizeNotAllowed  = errors.New("this product has no sizes")
)

var maxUnitPrice = decimal.RequireFromString("999999.99")

func NewCategory(name CategoryName) (*Category, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return &Category{Name: name, Slug: CategorySlug(name)}, nil
}

func CategorySlug(name CategoryName) string { return slug.Make(string(name)) }

// ValidatePrice accepts what fits a numeric(8,2) column and is not negative.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(maxUnitPrice) || !price.Equal(price.Truncate(2)) {
		return ErrInvalidPrice
	}
	return nil
}

// NewProduct normalises a product before its first insert. Slug holds the
// base slug; the catalog store appends a numeric suffix on collision.
func NewProduct(category *Category, name string, price decimal.Decimal, image string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := ValidatePrice(price); err != nil {
		return nil, err
	}
	if strings.TrimSpace(image) == "" {
		image = DefaultProductImage
	}
	return &Product{
		CategoryID: category.ID,
		Name:       name,
		UnitPrice:  price,
		Image:      image,
		Slug:       ProductSlug(name, category.Slug),
	}, nil
}

// ProductSlug is the base slug of a product before collision suffixes.
func ProductSlug(name, categorySlug string) string {
	return slug.Make(strings.TrimSpace(name) + " " + categorySlug)
}

// SuffixedSlug returns base for n <= 1 and base-n otherwise.
func SuffixedSlug(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// ResolveVariant checks a submitted size against what the category demands
// and returns the value to store on a line item.
func ResolveVariant(kind VariantKind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case VariantSize:
		if raw == "" {
			return "", ErrSizeRequired
		}
		sz, ok := ParseSize(raw)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownSize, raw)
		}
		return string(sz), nil
	default:
		if raw != "" {
			return "", ErrSizeNotAllowed
		}
		return "", nil
	}
}
