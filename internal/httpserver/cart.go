package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	sessionmw "github.com/Skotchmaster/storefront/pkg/middleware/session"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	view, err := h.Svc.ViewCart(ctx, sessionmw.ID(c))
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, presentCart(view))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_item_error", "invalid body", err)
	}

	item, err := h.Svc.AddItem(ctx, sessionmw.ID(c), service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Variant:   req.Size,
	})
	if err != nil {
		return fail(c, l, "add_item_error", err)
	}

	l.Info("add_item_success", "status", http.StatusCreated, "item_id", item.ID)
	c.Response().Header().Set(echo.HeaderLocation, "/cart")
	return c.JSON(http.StatusCreated, presentCartItem(*item))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "remove_item_error", "invalid item id", err)
	}

	if err := h.Svc.RemoveItem(ctx, sessionmw.ID(c), id); err != nil {
		return fail(c, l, "remove_item_error", err)
	}

	l.Info("remove_item_success", "item_id", id)
	return c.JSON(http.StatusOK, transport.RedirectResponse{Redirect: "/cart"})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "update_quantity_error", "invalid item id", err)
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_quantity_error", "invalid body", err)
	}

	if err := h.Svc.UpdateQuantity(ctx, sessionmw.ID(c), id, req.Quantity); err != nil {
		return fail(c, l, "update_quantity_error", err)
	}

	l.Info("update_quantity_success", "item_id", id, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, transport.StatusResponse{Status: "success"})
}
