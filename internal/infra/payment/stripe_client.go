// Package payment talks to the hosted payment provider over its REST API and
// verifies its webhook signatures. When no secret key is configured the mock
// provider stands in so the catalog keeps working without payments.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultAPIBaseURL = "https://api.stripe.com"

// metadataProductIDs is the session metadata key carrying catalog product ids
// in line-item order, used to map provider line items back to the catalog.
const metadataProductIDs = "product_ids"

// restClient implements service.PaymentProvider against the provider's
// form-encoded REST API.
type restClient struct {
	secretKey  string
	baseURL    string
	currency   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRESTClient creates the live provider client. currency is the default
// settlement currency for mirrored prices.
func NewRESTClient(secretKey, baseURL, currency string, logger *slog.Logger) service.PaymentProvider {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	return &restClient{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		currency:  currency,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Configured reports that real payments can be processed.
func (c *restClient) Configured() bool {
	return true
}

// MirrorProduct creates the provider-side product and its initial price.
func (c *restClient) MirrorProduct(ctx context.Context, product *entity.Product) (*service.ProductMirror, error) {
	form := url.Values{}
	form.Set("name", product.Name)
	if product.ShortDescription != "" {
		form.Set("description", product.ShortDescription)
	}
	if product.Image != "" {
		form.Set("images[0]", product.Image)
	}
	form.Set("metadata[catalog_id]", product.ID)
	form.Set("metadata[category]", product.Category)
	form.Set("metadata[brand]", product.Brand)

	var created struct {
		ID string `json:"id"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/products", form, &created); err != nil {
		return nil, errors.Wrap(err, "create provider product")
	}

	priceRef, err := c.createPrice(ctx, created.ID, product.UnitAmount())
	if err != nil {
		return nil, err
	}

	c.logger.Info("mirrored product to payment provider",
		slog.String("product_id", product.ID),
		slog.String("provider_product", created.ID),
		slog.String("provider_price", priceRef),
	)

	return &service.ProductMirror{ProductRef: created.ID, PriceRef: priceRef}, nil
}

// UpdateMirror pushes metadata changes and rotates the price object when the
// effective price changed. Provider prices are immutable, so rotation means
// create-then-archive.
func (c *restClient) UpdateMirror(ctx context.Context, product *entity.Product, priceChanged bool) (string, error) {
	form := url.Values{}
	form.Set("name", product.Name)
	if product.ShortDescription != "" {
		form.Set("description", product.ShortDescription)
	}
	if product.Image != "" {
		form.Set("images[0]", product.Image)
	}

	if err := c.call(ctx, http.MethodPost, "/v1/products/"+product.ExternalProductRef, form, nil); err != nil {
		return "", errors.Wrap(err, "update provider product")
	}

	if !priceChanged {
		return "", nil
	}

	newPriceRef, err := c.createPrice(ctx, product.ExternalProductRef, product.UnitAmount())
	if err != nil {
		return "", err
	}

	if product.ExternalPriceRef != "" {
		archive := url.Values{}
		archive.Set("active", "false")
		if err := c.call(ctx, http.MethodPost, "/v1/prices/"+product.ExternalPriceRef, archive, nil); err != nil {
			// The new price is already live; log and carry on.
			c.logger.Warn("failed to archive replaced provider price",
				slog.String("provider_price", product.ExternalPriceRef),
				slog.String("error", err.Error()),
			)
		}
	}

	return newPriceRef, nil
}

// ArchiveMirror deactivates the provider-side product.
func (c *restClient) ArchiveMirror(ctx context.Context, productRef string) error {
	form := url.Values{}
	form.Set("active", "false")

	if err := c.call(ctx, http.MethodPost, "/v1/products/"+productRef, form, nil); err != nil {
		return errors.Wrap(err, "archive provider product")
	}

	return nil
}

// CreateCheckoutSession starts a hosted checkout flow with inline price data.
func (c *restClient) CreateCheckoutSession(ctx context.Context, req *service.CheckoutSessionRequest) (*service.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	form.Set("phone_number_collection[enabled]", "true")
	form.Set("billing_address_collection", "required")
	form.Set("shipping_address_collection[allowed_countries][0]", "US")

	productIDs := make([]string, 0, len(req.LineItems))
	for i, item := range req.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", req.Currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.ProductName)
		productIDs = append(productIDs, item.ProductID)
	}

	for key, value := range req.Metadata {
		form.Set("metadata["+key+"]", value)
	}
	form.Set("metadata["+metadataProductIDs+"]", strings.Join(productIDs, ","))

	var session struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, errors.Wrap(err, "create checkout session")
	}

	c.logger.Info("created checkout session",
		slog.String("session_id", session.ID),
		slog.Int("line_items", len(req.LineItems)),
	)

	return &service.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// sessionResponse is the subset of the provider's session object the order
// recorder needs.
type sessionResponse struct {
	ID              string `json:"id"`
	PaymentIntent   string `json:"payment_intent"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	PaymentStatus   string `json:"payment_status"`
	CustomerDetails struct {
		Email   string          `json:"email"`
		Name    string          `json:"name"`
		Phone   string          `json:"phone"`
		Address providerAddress `json:"address"`
	} `json:"customer_details"`
	ShippingDetails struct {
		Name    string          `json:"name"`
		Address providerAddress `json:"address"`
	} `json:"shipping_details"`
	LineItems struct {
		Data []struct {
			Description string `json:"description"`
			Quantity    int    `json:"quantity"`
			Price       struct {
				UnitAmount int64 `json:"unit_amount"`
			} `json:"price"`
		} `json:"data"`
	} `json:"line_items"`
	Metadata map[string]string `json:"metadata"`
}

type providerAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (a providerAddress) toEntity() entity.Address {
	return entity.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// FetchSession retrieves line items and buyer details for a session.
func (c *restClient) FetchSession(ctx context.Context, sessionID string) (*service.SessionDetails, error) {
	path := "/v1/checkout/sessions/" + sessionID + "?expand[]=line_items"

	var session sessionResponse
	if err := c.call(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, errors.Wrap(err, "fetch checkout session")
	}

	// Line items come back in creation order; the metadata carries catalog
	// ids in the same order.
	productIDs := strings.Split(session.Metadata[metadataProductIDs], ",")

	lineItems := make([]service.SessionLineItem, 0, len(session.LineItems.Data))
	for i, item := range session.LineItems.Data {
		productID := ""
		if i < len(productIDs) {
			productID = productIDs[i]
		}
		lineItems = append(lineItems, service.SessionLineItem{
			ProductID:   productID,
			ProductName: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  item.Price.UnitAmount,
		})
	}

	shipping := session.ShippingDetails.Address.toEntity()
	billing := session.CustomerDetails.Address.toEntity()
	if shipping == (entity.Address{}) {
		shipping = billing
	}

	return &service.SessionDetails{
		ID:              session.ID,
		PaymentRef:      session.PaymentIntent,
		CustomerEmail:   session.CustomerDetails.Email,
		CustomerName:    session.CustomerDetails.Name,
		CustomerPhone:   session.CustomerDetails.Phone,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		LineItems:       lineItems,
		AmountTotal:     session.AmountTotal,
		Currency:        session.Currency,
		PaymentStatus:   session.PaymentStatus,
		Metadata:        session.Metadata,
	}, nil
}

func (c *restClient) createPrice(ctx context.Context, productRef string, unitAmount int64) (string, error) {
	form := url.Values{}
	form.Set("product", productRef)
	form.Set("unit_amount", strconv.FormatInt(unitAmount, 10))
	form.Set("currency", c.currency)

	var created struct {
		ID string `json:"id"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/prices", form, &created); err != nil {
		return "", errors.Wrap(err, "create provider price")
	}

	return created.ID, nil
}

// call performs one form-encoded API request and decodes the JSON response
// into out when it is non-nil.
func (c *restClient) call(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.WithStack(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return errors.Errorf("provider returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}

		return errors.Errorf("provider returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(json.Unmarshal(raw, out), "decode provider response")
}
