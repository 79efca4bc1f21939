package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/middleware/csrf"
	sessionmw "github.com/Skotchmaster/storefront/pkg/middleware/session"
	"github.com/Skotchmaster/storefront/pkg/session"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	Sessions        *session.Manager
	CSRF            csrf.Config
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("", sessionmw.Require(d.Sessions), csrf.Middleware(d.CSRF))

	api.GET("/categories", d.CatalogHandler.ListCategories)
	api.GET("/categories/:id/products", d.CatalogHandler.ListProducts)
	api.GET("/products/:id", d.CatalogHandler.GetProduct)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart/items", d.CartHandler.AddItem)
	api.DELETE("/cart/items/:id", d.CartHandler.RemoveItem)
	api.PATCH("/cart/items/:id", d.CartHandler.UpdateQuantity)

	api.POST("/checkout", d.CheckoutHandler.Checkout)
	api.GET("/orders/:number/confirmation", d.CheckoutHandler.Confirmation)
}
