package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/shopspring/decimal"
)

const maxSlugSuffix = 1000

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type ProductPage struct {
	Category *models.Category
	Items    []models.Product
	Page     int
	Size     int
	Total    int64
}

func (p *ProductPage) TotalPages() int64 { return util.TotalPages(p.Total, p.Size) }
func (p *ProductPage) HasPrev() bool     { return p.Page > 1 }
func (p *ProductPage) HasNext() bool     { return int64(p.Page)*int64(p.Size) < p.Total }

type NewProductInput struct {
	CategoryID uint
	Name       string
	UnitPrice  decimal.Decimal
	Image      string
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	return cat, nil
}

func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err, "product")
	}
	return p, nil
}

// ProductsByCategory pages through a category cheapest first.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID uint, page, size int) (*ProductPage, error) {
	cat, err := s.Category(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	page, size = util.Normalize(page, size)
	offset, limit := util.Calculate(page, size)

	total, items, err := s.Repo.ListProducts(ctx, categoryID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Category: cat, Items: items, Page: page, Size: limit, Total: total}, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name models.CategoryName) (*models.Category, error) {
	cat, err := models.NewCategory(name)
	if err != nil {
		return nil, newValidationError("name", err.Error())
	}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, translate(err, "create category")
	}
	return cat, nil
}

// CreateProduct derives the slug from name and category and appends -2, -3
// and so on until it no longer collides.
func (s *CatalogService) CreateProduct(ctx context.Context, in NewProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	cat, err := s.Category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	p, err := models.NewProduct(cat, in.Name, in.UnitPrice, in.Image)
	if err != nil {
		return nil, productValidationError(err)
	}

	base := p.Slug
	for n := 1; ; n++ {
		if n > maxSlugSuffix {
			return nil, fmt.Errorf("slug %q exhausted: %w", base, ErrConflict)
		}
		candidate := models.SuffixedSlug(base, n)
		taken, err := s.Repo.SlugTaken(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			p.Slug = candidate
			break
		}
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, translate(err, "create product")
	}
	p.Category = cat

	l.Info("product_created", "product_id", p.ID, "slug", p.Slug)
	publish(ctx, s.Events, p.Slug, map[string]any{
		"type":      "product_created",
		"productID": p.ID,
		"name":      p.Name,
		"unitPrice": p.UnitPrice.StringFixed(2),
	})
	return p, nil
}

// UpdatePrice changes what open carts are charged. Orders already placed keep
// the price captured at checkout.
func (s *CatalogService) UpdatePrice(ctx context.Context, productID uint, price decimal.Decimal) error {
	if err := models.ValidatePrice(price); err != nil {
		return productValidationError(err)
	}
	if err := s.Repo.UpdateProductPrice(ctx, productID, price); err != nil {
		return translate(err, "product")
	}
	publish(ctx, s.Events, fmt.Sprint(productID), map[string]any{
		"type":      "product_price_changed",
		"productID": productID,
		"unitPrice": price.StringFixed(2),
	})
	return nil
}

func productValidationError(err error) error {
	switch {
	case errors.Is(err, models.ErrEmptyName):
		return newValidationError("name", err.Error())
	case errors.Is(err, models.ErrInvalidPrice):
		return newValidationError("unit_price", err.Error())
	default:
		return newValidationError("product", err.Error())
	}
}
