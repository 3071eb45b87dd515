package jsonfile

import (
	"time"

	"darkstore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// productRecord is the on-disk shape of a catalog product.
type productRecord struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ShortDescription   string          `json:"shortDescription"`
	LongDescription    string          `json:"longDescription"`
	Price              decimal.Decimal `json:"price"`
	Discount           int             `json:"discount"`
	Stock              int             `json:"stock"`
	Image              string          `json:"image"`
	MetaTags           []string        `json:"metaTags"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand"`
	ExternalProductRef string          `json:"externalProductRef,omitempty"`
	ExternalPriceRef   string          `json:"externalPriceRef,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func toProductDomain(data *productRecord) *entity.Product {
	return &entity.Product{
		ID:                 data.ID,
		Name:               data.Name,
		ShortDescription:   data.ShortDescription,
		LongDescription:    data.LongDescription,
		Price:              data.Price,
		Discount:           data.Discount,
		Stock:              data.Stock,
		Image:              data.Image,
		MetaTags:           data.MetaTags,
		Category:           data.Category,
		Brand:              data.Brand,
		ExternalProductRef: data.ExternalProductRef,
		ExternalPriceRef:   data.ExternalPriceRef,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) productRecord {
	return productRecord{
		ID:                 data.ID,
		Name:               data.Name,
		ShortDescription:   data.ShortDescription,
		LongDescription:    data.LongDescription,
		Price:              data.Price,
		Discount:           data.Discount,
		Stock:              data.Stock,
		Image:              data.Image,
		MetaTags:           data.MetaTags,
		Category:           data.Category,
		Brand:              data.Brand,
		ExternalProductRef: data.ExternalProductRef,
		ExternalPriceRef:   data.ExternalPriceRef,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// orderRecord is the on-disk shape of a recorded order.
type orderRecord struct {
	ID                 uuid.UUID          `json:"id"`
	ExternalSessionRef string             `json:"externalSessionRef"`
	ExternalPaymentRef string             `json:"externalPaymentRef,omitempty"`
	CustomerEmail      string             `json:"customerEmail"`
	CustomerName       string             `json:"customerName"`
	CustomerPhone      string             `json:"customerPhone,omitempty"`
	ShippingAddress    entity.Address     `json:"shippingAddress"`
	BillingAddress     entity.Address     `json:"billingAddress"`
	Items              []entity.OrderItem `json:"items"`
	Total              decimal.Decimal    `json:"total"`
	Currency           string             `json:"currency"`
	Status             string             `json:"status"`
	Fulfillment        string             `json:"fulfillment"`
	PaymentStatus      string             `json:"paymentStatus,omitempty"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func toOrderDomain(data *orderRecord) *entity.Order {
	return &entity.Order{
		ID:                 data.ID,
		ExternalSessionRef: data.ExternalSessionRef,
		ExternalPaymentRef: data.ExternalPaymentRef,
		CustomerEmail:      data.CustomerEmail,
		CustomerName:       data.CustomerName,
		CustomerPhone:      data.CustomerPhone,
		ShippingAddress:    data.ShippingAddress,
		BillingAddress:     data.BillingAddress,
		Items:              data.Items,
		Total:              data.Total,
		Currency:           data.Currency,
		Status:             entity.OrderStatus(data.Status),
		Fulfillment:        entity.FulfillmentStatus(data.Fulfillment),
		PaymentStatus:      data.PaymentStatus,
		Metadata:           data.Metadata,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) orderRecord {
	return orderRecord{
		ID:                 data.ID,
		ExternalSessionRef: data.ExternalSessionRef,
		ExternalPaymentRef: data.ExternalPaymentRef,
		CustomerEmail:      data.CustomerEmail,
		CustomerName:       data.CustomerName,
		CustomerPhone:      data.CustomerPhone,
		ShippingAddress:    data.ShippingAddress,
		BillingAddress:     data.BillingAddress,
		Items:              data.Items,
		Total:              data.Total,
		Currency:           data.Currency,
		Status:             string(data.Status),
		Fulfillment:        string(data.Fulfillment),
		PaymentStatus:      data.PaymentStatus,
		Metadata:           data.Metadata,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// customerRecord is the on-disk shape of a ledger entry.
type customerRecord struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	ShippingAddress entity.Address  `json:"shippingAddress"`
	BillingAddress  entity.Address  `json:"billingAddress"`
	TotalOrders     int             `json:"totalOrders"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toCustomerDomain(data *customerRecord) *entity.Customer {
	return &entity.Customer{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Phone:           data.Phone,
		ShippingAddress: data.ShippingAddress,
		BillingAddress:  data.BillingAddress,
		TotalOrders:     data.TotalOrders,
		TotalSpent:      data.TotalSpent,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromCustomerDomain(data *entity.Customer) customerRecord {
	return customerRecord{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Phone:           data.Phone,
		ShippingAddress: data.ShippingAddress,
		BillingAddress:  data.BillingAddress,
		TotalOrders:     data.TotalOrders,
		TotalSpent:      data.TotalSpent,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
