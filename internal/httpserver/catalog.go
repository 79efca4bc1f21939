package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
	sessionmw "github.com/Skotchmaster/storefront/pkg/middleware/session"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc  *service.CatalogService
	Cart *service.CartService
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		return fail(c, l, "list_categories_error", err)
	}

	resp := make([]transport.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		resp = append(resp, presentCategory(cat))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "list_products_error", "invalid category id", err)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	result, err := h.Svc.ProductsByCategory(ctx, id, page, size)
	if err != nil {
		return fail(c, l, "list_products_error", err)
	}

	l.Info("list_products_success", "category_id", id, "page", result.Page, "total", result.Total)
	return c.JSON(http.StatusOK, presentPage(result))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_product_error", "invalid product id", err)
	}

	product, err := h.Svc.Product(ctx, id)
	if err != nil {
		return fail(c, l, "get_product_error", err)
	}

	cart, err := h.Cart.CurrentCart(ctx, sessionmw.ID(c))
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return fail(c, l, "get_product_error", err)
	}
	inCart, err := h.Cart.ContainsProduct(ctx, cart, product.ID)
	if err != nil {
		return fail(c, l, "get_product_error", err)
	}

	resp := presentProduct(*product, product.Category)
	resp.InCart = &inCart
	return c.JSON(http.StatusOK, resp)
}
