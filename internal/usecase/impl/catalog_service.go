// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"

	"darkstore/config"
	deliverycontext "darkstore/internal/delivery/context"
	"darkstore/internal/domain/entity"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	provider    service.PaymentProvider
	maxProducts int
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Provider    service.PaymentProvider
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		provider:    params.Provider,
		maxProducts: params.Config.Catalog.MaxProducts,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns the catalog with the remaining creation headroom.
func (srv *catalogService) ListProducts(ctx context.Context) (*usecase.ListProductsOutput, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	remaining := srv.maxProducts - len(products)
	if remaining < 0 {
		remaining = 0
	}

	return &usecase.ListProductsOutput{
		Products:          usecase.NewProductDTOs(products),
		RemainingCapacity: remaining,
	}, nil
}

// GetProduct returns one product by id.
func (srv *catalogService) GetProduct(ctx context.Context, id string) (*usecase.ProductDTO, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	dto := usecase.NewProductDTO(product)

	return &dto, nil
}

// CreateProduct adds a product to the catalog and mirrors it to the payment
// provider. The capacity check runs before any mutation; a full catalog
// leaves both the store and the provider untouched.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*usecase.ProductDTO, error) {
	count, err := srv.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= srv.maxProducts {
		return nil, domainerrors.ErrCatalogLimitReached.WithDetails(
			"the catalog is limited to " + strconv.Itoa(srv.maxProducts) + " products; delete one before adding another")
	}

	product := &entity.Product{
		ID:               uuid.NewString(),
		Name:             input.Name,
		ShortDescription: input.ShortDescription,
		LongDescription:  input.LongDescription,
		Price:            decimal.NewFromFloat(input.Price).Round(2),
		Discount:         input.Discount,
		Stock:            input.Stock,
		Image:            input.Image,
		MetaTags:         input.MetaTags,
		Category:         input.Category,
		Brand:            input.Brand,
	}

	// Mirroring is best effort: a provider outage must not block catalog
	// management. Unmirrored products simply cannot be checked out yet.
	mirror, err := srv.provider.MirrorProduct(ctx, product)
	if err != nil {
		srv.log(ctx).Warn("failed to mirror product to payment provider",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	} else {
		product.ExternalProductRef = mirror.ProductRef
		product.ExternalPriceRef = mirror.PriceRef
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	dto := usecase.NewProductDTO(product)

	return &dto, nil
}

// UpdateProduct applies a partial edit and keeps the provider mirror in sync,
// rotating the price object when the effective price changed.
func (srv *catalogService) UpdateProduct(ctx context.Context, id string, input *usecase.UpdateProductInput) (*usecase.ProductDTO, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	previousUnitAmount := product.UnitAmount()
	applyProductInput(product, input)
	priceChanged := product.UnitAmount() != previousUnitAmount

	if product.ExternalProductRef != "" {
		newPriceRef, err := srv.provider.UpdateMirror(ctx, product, priceChanged)
		if err != nil {
			srv.log(ctx).Warn("failed to update payment provider mirror",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		} else if newPriceRef != "" {
			product.ExternalPriceRef = newPriceRef
		}
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	srv.log(ctx).Info("product updated",
		slog.String("product_id", product.ID),
		slog.Bool("price_changed", priceChanged),
	)

	dto := usecase.NewProductDTO(product)

	return &dto, nil
}

// DeleteProduct removes the product locally and archives (never deletes) the
// provider mirror so historical sessions keep resolving.
func (srv *catalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return err
	}

	deleted, err := srv.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domainerrors.ErrProductNotFound
	}

	if product.ExternalProductRef != "" {
		if err := srv.provider.ArchiveMirror(ctx, product.ExternalProductRef); err != nil {
			srv.log(ctx).Warn("failed to archive payment provider mirror",
				slog.String("product_id", id),
				slog.String("provider_product", product.ExternalProductRef),
				slog.String("error", err.Error()),
			)
		}
	}

	srv.log(ctx).Info("product deleted", slog.String("product_id", id))

	return nil
}

// applyProductInput copies the non-nil fields of a partial edit onto the
// entity.
func applyProductInput(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.ShortDescription != nil {
		product.ShortDescription = *input.ShortDescription
	}
	if input.LongDescription != nil {
		product.LongDescription = *input.LongDescription
	}
	if input.Price != nil {
		product.Price = decimal.NewFromFloat(*input.Price).Round(2)
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.MetaTags != nil {
		product.MetaTags = *input.MetaTags
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
}
