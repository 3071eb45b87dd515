package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalogUsecase serves canned catalog responses.
type stubCatalogUsecase struct {
	gotCreate *usecase.CreateProductInput
	product   *usecase.ProductDTO
	listing   *usecase.ListProductsOutput
	err       error
}

func (s *stubCatalogUsecase) ListProducts(_ context.Context) (*usecase.ListProductsOutput, error) {
	return s.listing, s.err
}

func (s *stubCatalogUsecase) GetProduct(_ context.Context, _ string) (*usecase.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.product, nil
}

func (s *stubCatalogUsecase) CreateProduct(_ context.Context, input *usecase.CreateProductInput) (*usecase.ProductDTO, error) {
	s.gotCreate = input
	if s.err != nil {
		return nil, s.err
	}

	return s.product, nil
}

func (s *stubCatalogUsecase) UpdateProduct(_ context.Context, _ string, _ *usecase.UpdateProductInput) (*usecase.ProductDTO, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.product, nil
}

func (s *stubCatalogUsecase) DeleteProduct(_ context.Context, _ string) error {
	return s.err
}

func TestListProducts_RendersEnvelope(t *testing.T) {
	stub := &stubCatalogUsecase{listing: &usecase.ListProductsOutput{
		Products:          []usecase.ProductDTO{{ID: "p1", Name: "Trail Enamel Mug"}},
		RemainingCapacity: 19,
	}}
	h := NewProductHandler(stub, testLogger())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"remainingCapacity":19`)
	assert.Contains(t, rec.Body.String(), "Trail Enamel Mug")
}

func TestCreateProduct_BindsAndValidates(t *testing.T) {
	stub := &stubCatalogUsecase{product: &usecase.ProductDTO{ID: "p1", Name: "Trail Enamel Mug"}}
	h := NewProductHandler(stub, testLogger())
	e := newTestEcho()

	body := `{"name":"Trail Enamel Mug","price":12.5,"stock":80,"category":"Cookware","brand":"Ferro"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.gotCreate)
	assert.Equal(t, "Trail Enamel Mug", stub.gotCreate.Name)
	assert.InDelta(t, 12.5, stub.gotCreate.Price, 0.001)
}

func TestCreateProduct_MissingFieldsFailValidation(t *testing.T) {
	stub := &stubCatalogUsecase{}
	h := NewProductHandler(stub, testLogger())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"price":12.5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateProduct(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, stub.gotCreate, "invalid input must not reach the usecase")

	e.HTTPErrorHandler(err, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestGetProduct_NotFoundRendersEnvelope(t *testing.T) {
	stub := &stubCatalogUsecase{err: domainerrors.ErrProductNotFound}
	h := NewProductHandler(stub, testLogger())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetProduct(c)
	require.Error(t, err)
	e.HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PRODUCT_NOT_FOUND")
}
