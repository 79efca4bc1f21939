package transport

import "time"

type AddItemRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductResponse struct {
	ID         uint     `json:"id"`
	CategoryID uint     `json:"category_id"`
	Name       string   `json:"name"`
	UnitPrice  string   `json:"unit_price"`
	Image      string   `json:"image"`
	Slug       string   `json:"slug"`
	Sizes      []string `json:"sizes,omitempty"`
	InCart     *bool    `json:"in_cart,omitempty"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ProductPageResponse struct {
	Data []ProductResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

type CartItemResponse struct {
	ID        uint            `json:"id"`
	Product   ProductResponse `json:"product"`
	Quantity  uint            `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	LineTotal string          `json:"line_total"`
}

type CartResponse struct {
	CartID       string             `json:"cart_id,omitempty"`
	Items        []CartItemResponse `json:"items"`
	Total        string             `json:"total"`
	Empty        bool               `json:"empty"`
	LastModified *time.Time         `json:"last_modified,omitempty"`
}

type OrderItemResponse struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    uint   `json:"quantity"`
	Size        string `json:"size,omitempty"`
	LineTotal   string `json:"line_total"`
}

type OrderResponse struct {
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	TotalPrice  *string             `json:"total_price"`
	DateOrdered time.Time           `json:"date_ordered"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Street      string              `json:"street"`
	Suburb      string              `json:"suburb"`
	State       string              `json:"state"`
	Postcode    string              `json:"postcode"`
	Items       []OrderItemResponse `json:"items"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
