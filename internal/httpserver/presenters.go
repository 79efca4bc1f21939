package httpserver

import (
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func presentCategory(c models.Category) transport.CategoryResponse {
	return transport.CategoryResponse{ID: c.ID, Name: string(c.Name), Slug: c.Slug}
}

// presentProduct lists sizes only when the category is known.
func presentProduct(p models.Product, cat *models.Category) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		UnitPrice:  p.UnitPrice.StringFixed(2),
		Image:      p.Image,
		Slug:       p.Slug,
	}
	if cat != nil && cat.Name.Variant() == models.VariantSize {
		for _, sz := range models.Sizes {
			resp.Sizes = append(resp.Sizes, string(sz))
		}
	}
	return resp
}

func presentPage(page *service.ProductPage) transport.ProductPageResponse {
	data := make([]transport.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		data = append(data, presentProduct(p, page.Category))
	}
	return transport.ProductPageResponse{
		Data: data,
		Meta: transport.PageMeta{
			Page:       page.Page,
			Size:       page.Size,
			Total:      page.Total,
			TotalPages: page.TotalPages(),
			HasPrev:    page.HasPrev(),
			HasNext:    page.HasNext(),
		},
	}
}

func presentCartItem(it models.CartItem) transport.CartItemResponse {
	return transport.CartItemResponse{
		ID:        it.ID,
		Product:   presentProduct(it.Product, it.Product.Category),
		Quantity:  it.Quantity,
		Size:      it.Variant,
		LineTotal: it.LineTotal().StringFixed(2),
	}
}

func presentCart(v *service.CartView) transport.CartResponse {
	resp := transport.CartResponse{
		Items: make([]transport.CartItemResponse, 0, len(v.Lines)),
		Total: v.Total.StringFixed(2),
		Empty: v.Empty,
	}
	if v.Cart != nil {
		resp.CartID = v.Cart.Token
		updated := v.Cart.UpdatedAt
		resp.LastModified = &updated
	}
	for _, l := range v.Lines {
		resp.Items = append(resp.Items, presentCartItem(l.Item))
	}
	return resp
}

func presentOrder(o *models.Order) transport.OrderResponse {
	resp := transport.OrderResponse{
		OrderNumber: o.Number,
		Status:      string(o.Status),
		DateOrdered: o.DateOrdered,
		Email:       o.Email,
		Phone:       o.Phone,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Street:      o.Street,
		Suburb:      o.Suburb,
		State:       o.State,
		Postcode:    o.Postcode,
		Items:       make([]transport.OrderItemResponse, 0, len(o.Items)),
	}
	if o.TotalPrice.Valid {
		total := o.TotalPrice.Decimal.StringFixed(2)
		resp.TotalPrice = &total
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, transport.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Quantity:    it.Quantity,
			Size:        it.Variant,
			LineTotal:   it.LineTotal().StringFixed(2),
		})
	}
	return resp
}
