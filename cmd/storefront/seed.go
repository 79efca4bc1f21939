package main

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	category models.CategoryName
	name     string
	price    string
}

var seedProducts = []seedProduct{
	{category: models.CategoryTShirts, name: "Happy Wife Happy Life", price: "20.55"},
	{category: models.CategoryTShirts, name: "I Said What I Said", price: "22.00"},
	{category: models.CategoryTShirts, name: "Not Now", price: "19.50"},
	{category: models.CategoryMugs, name: "Coffee First", price: "19.95"},
	{category: models.CategoryMugs, name: "Because I Said So", price: "17.95"},
}

// seed is safe to rerun: existing categories and products are matched by
// slug and left alone.
func seed(ctx context.Context, svc *service.CatalogService) error {
	l := logging.FromContext(ctx).With("cmd", "seed")

	cats := map[models.CategoryName]*models.Category{}
	for _, name := range models.CategoryNames {
		cat, err := svc.Repo.FindCategoryBySlug(ctx, models.CategorySlug(name))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cat, err = svc.CreateCategory(ctx, name)
		}
		if err != nil {
			return err
		}
		cats[name] = cat
	}

	for _, sp := range seedProducts {
		cat := cats[sp.category]
		_, err := svc.Repo.FindProductBySlug(ctx, models.ProductSlug(sp.name, cat.Slug))
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p, err := svc.CreateProduct(ctx, service.NewProductInput{
			CategoryID: cat.ID,
			Name:       sp.name,
			UnitPrice:  decimal.RequireFromString(sp.price),
		})
		if err != nil {
			return err
		}
		l.Info("seed_product_created", "slug", p.Slug)
	}
	return nil
}
