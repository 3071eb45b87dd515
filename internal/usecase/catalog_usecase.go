package usecase

import (
	"context"
)

// CreateProductInput carries a new product from the dashboard.
type CreateProductInput struct {
	Name             string   `json:"name" validate:"required"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	Discount         int      `json:"discount" validate:"gte=0,lte=100"`
	Stock            int      `json:"stock" validate:"gte=0"`
	Image            string   `json:"image"`
	MetaTags         []string `json:"metaTags"`
	Category         string   `json:"category" validate:"required"`
	Brand            string   `json:"brand" validate:"required"`
}

// UpdateProductInput carries a partial product edit. Nil fields keep their
// stored values.
type UpdateProductInput struct {
	Name             *string   `json:"name"`
	ShortDescription *string   `json:"shortDescription"`
	LongDescription  *string   `json:"longDescription"`
	Price            *float64  `json:"price" validate:"omitempty,gt=0"`
	Discount         *int      `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Stock            *int      `json:"stock" validate:"omitempty,gte=0"`
	Image            *string   `json:"image"`
	MetaTags         *[]string `json:"metaTags"`
	Category         *string   `json:"category"`
	Brand            *string   `json:"brand"`
}

// ListProductsOutput is the catalog listing with the remaining creation
// headroom surfaced for the dashboard.
type ListProductsOutput struct {
	Products          []ProductDTO `json:"products"`
	RemainingCapacity int          `json:"remainingCapacity"`
}

// CatalogUsecase manages the product catalog and keeps the payment-provider
// mirror in sync.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) (*ListProductsOutput, error)
	GetProduct(ctx context.Context, id string) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id string) error
}
