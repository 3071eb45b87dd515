// Package usecase defines the application's business-logic interfaces and
// the data-transfer types exchanged with the delivery layer.
package usecase

import (
	"time"

	"darkstore/internal/domain/entity"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ProductDTO is the JSON shape of a catalog product. Money is exposed as a
// plain number at the boundary; the domain keeps exact decimals.
type ProductDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Price            float64  `json:"price"`
	EffectivePrice   float64  `json:"effectivePrice"`
	Discount         int      `json:"discount"`
	Stock            int      `json:"stock"`
	Image            string   `json:"image"`
	MetaTags         []string `json:"metaTags"`
	Category         string   `json:"category"`
	Brand            string   `json:"brand"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// NewProductDTO maps a product entity to its boundary shape.
func NewProductDTO(p *entity.Product) ProductDTO {
	tags := p.MetaTags
	if tags == nil {
		tags = []string{}
	}

	return ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Price:            p.Price.InexactFloat64(),
		EffectivePrice:   p.EffectivePrice().InexactFloat64(),
		Discount:         p.Discount,
		Stock:            p.Stock,
		Image:            p.Image,
		MetaTags:         tags,
		Category:         p.Category,
		Brand:            p.Brand,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

// NewProductDTOs maps a slice of product entities.
func NewProductDTOs(products []*entity.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}

	return out
}

// OrderItemDTO is the JSON shape of one purchased line.
type OrderItemDTO struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// OrderDTO is the JSON shape of a recorded order.
type OrderDTO struct {
	ID                 string            `json:"id"`
	ExternalSessionRef string            `json:"externalSessionRef,omitempty"`
	ExternalPaymentRef string            `json:"externalPaymentRef,omitempty"`
	CustomerEmail      string            `json:"customerEmail"`
	CustomerName       string            `json:"customerName"`
	CustomerPhone      string            `json:"customerPhone"`
	ShippingAddress    entity.Address    `json:"shippingAddress"`
	BillingAddress     entity.Address    `json:"billingAddress"`
	Items              []OrderItemDTO    `json:"items"`
	Total              float64           `json:"total"`
	Currency           string            `json:"currency"`
	Status             string            `json:"status"`
	Fulfillment        string            `json:"fulfillment"`
	PaymentStatus      string            `json:"paymentStatus"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	CreatedAt          string            `json:"createdAt"`
	UpdatedAt          string            `json:"updatedAt"`
}

// NewOrderDTO maps an order entity to its boundary shape.
func NewOrderDTO(o *entity.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice.InexactFloat64(),
			Total:       item.LineTotal.InexactFloat64(),
		})
	}

	return OrderDTO{
		ID:                 o.ID.String(),
		ExternalSessionRef: o.ExternalSessionRef,
		ExternalPaymentRef: o.ExternalPaymentRef,
		CustomerEmail:      o.CustomerEmail,
		CustomerName:       o.CustomerName,
		CustomerPhone:      o.CustomerPhone,
		ShippingAddress:    o.ShippingAddress,
		BillingAddress:     o.BillingAddress,
		Items:              items,
		Total:              o.Total.InexactFloat64(),
		Currency:           o.Currency,
		Status:             string(o.Status),
		Fulfillment:        string(o.Fulfillment),
		PaymentStatus:      o.PaymentStatus,
		Metadata:           o.Metadata,
		CreatedAt:          formatTime(o.CreatedAt),
		UpdatedAt:          formatTime(o.UpdatedAt),
	}
}

// NewOrderDTOs maps a slice of order entities.
func NewOrderDTOs(orders []*entity.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderDTO(o))
	}

	return out
}

// CustomerDTO is the JSON shape of a ledger record.
type CustomerDTO struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	Name            string         `json:"name"`
	Phone           string         `json:"phone,omitempty"`
	ShippingAddress entity.Address `json:"shippingAddress"`
	BillingAddress  entity.Address `json:"billingAddress"`
	TotalOrders     int            `json:"totalOrders"`
	TotalSpent      float64        `json:"totalSpent"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// NewCustomerDTO maps a customer entity to its boundary shape.
func NewCustomerDTO(c *entity.Customer) CustomerDTO {
	return CustomerDTO{
		ID:              c.ID.String(),
		Email:           c.Email,
		Name:            c.Name,
		Phone:           c.Phone,
		ShippingAddress: c.ShippingAddress,
		BillingAddress:  c.BillingAddress,
		TotalOrders:     c.TotalOrders,
		TotalSpent:      c.TotalSpent.InexactFloat64(),
		CreatedAt:       formatTime(c.CreatedAt),
		UpdatedAt:       formatTime(c.UpdatedAt),
	}
}

// NewCustomerDTOs maps a slice of customer entities.
func NewCustomerDTOs(customers []*entity.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerDTO(c))
	}

	return out
}
