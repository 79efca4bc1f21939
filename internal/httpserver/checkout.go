package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/logging"
	sessionmw "github.com/Skotchmaster/storefront/pkg/middleware/session"
	"github.com/labstack/echo/v4"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	var req service.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout_error", "invalid body", err)
	}

	order, err := h.Svc.Checkout(ctx, sessionmw.ID(c), req)
	if err != nil {
		return fail(c, l, "checkout_error", err)
	}

	l.Info("checkout_success", "status", http.StatusCreated, "order_number", order.Number)
	c.Response().Header().Set(echo.HeaderLocation, "/orders/"+order.Number+"/confirmation")
	return c.JSON(http.StatusCreated, presentOrder(order))
}

func (h *CheckoutHTTP) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.confirmation")

	order, err := h.Svc.PurchaseConfirmed(ctx, sessionmw.ID(c), c.Param("number"))
	if err != nil {
		return fail(c, l, "confirmation_error", err)
	}
	return c.JSON(http.StatusOK, presentOrder(order))
}
