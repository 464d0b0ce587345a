// Package backend is the HTTP client for the opaque ShopMate backend: the
// auth API, the product catalog, and the payment endpoints. Responses are
// translated into domain types at this boundary; in particular decimal USD
// prices become integer cents here and stay integer everywhere else.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	apperrors "github.com/Pentakotacharan/shopmate-client/pkg/errors"
	"github.com/Pentakotacharan/shopmate-client/pkg/httpclient"
)

// Doer is the transport the client runs on. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type Doer interface {
	Get(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error)
}

// Client talks to the ShopMate backend.
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
		logger:  logger,
	}
}

type authResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AuthToken string `json:"authToken"`
}

// Login exchanges credentials for an authenticated actor.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Actor, error) {
	body := map[string]string{"email": email, "password": password}

	var out authResponse
	if err := c.postJSON(ctx, "/api/auth/login", "login", body, &out); err != nil {
		return domain.Actor{}, err
	}

	return domain.Actor{ID: out.ID, Name: out.Name, Email: out.Email, AuthToken: out.AuthToken}, nil
}

// Register creates a new customer account and signs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (domain.Actor, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var out authResponse
	if err := c.postJSON(ctx, "/api/auth/register", "register", body, &out); err != nil {
		return domain.Actor{}, err
	}

	return domain.Actor{ID: out.ID, Name: out.Name, Email: out.Email, AuthToken: out.AuthToken}, nil
}

type productResponse struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	Brand        string      `json:"brand"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	Price        json.Number `json:"price"`
	CountInStock int         `json:"countInStock"`
}

func (p productResponse) toDomain() (domain.Product, error) {
	cents, err := DecimalToCents(p.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad price %q: %w", p.ID, p.Price, err)
	}
	return domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Description:  p.Description,
		ImageURL:     p.Image,
		PriceCents:   cents,
		CountInStock: p.CountInStock,
	}, nil
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []productResponse
	if err := c.getJSON(ctx, "/api/products", "list products", &out); err != nil {
		return nil, catalogErr(err)
	}

	products := make([]domain.Product, 0, len(out))
	for _, p := range out {
		prod, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, prod)
	}
	return products, nil
}

// GetProduct fetches one catalog entry by ID.
func (c *Client) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	var out productResponse
	if err := c.getJSON(ctx, "/api/products/"+productID, "get product", &out); err != nil {
		return domain.Product{}, catalogErr(err)
	}
	return out.toDomain()
}

// catalogErr classifies catalog failures: a structured backend answer (404,
// 400) passes through, anything else means the catalog is unreachable.
func catalogErr(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.CatalogUnavailable(err.Error())
}

// StripeConfig fetches the Stripe publishable key.
func (c *Client) StripeConfig(ctx context.Context) (string, error) {
	var out struct {
		PublishableKey string `json:"publishableKey"`
	}
	if err := c.getJSON(ctx, "/api/payment/config/stripe", "stripe config", &out); err != nil {
		return "", err
	}
	return out.PublishableKey, nil
}

// CreatePaymentIntent creates a Stripe payment intent for the given amount in
// cents and returns the client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	body := map[string]int64{"amount": amountCents}

	var out struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := c.postJSON(ctx, "/api/payment/create-payment-intent", "create payment intent", body, &out); err != nil {
		return "", err
	}
	return out.ClientSecret, nil
}

// RazorpayOrder is the backend's response to an order creation request.
type RazorpayOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// CreateRazorpayOrder creates a Razorpay order for the given amount in paise.
func (c *Client) CreateRazorpayOrder(ctx context.Context, amountPaise int64) (RazorpayOrder, error) {
	body := map[string]int64{"amount": amountPaise}

	var out RazorpayOrder
	if err := c.postJSON(ctx, "/api/payment/razorpay-order", "create razorpay order", body, &out); err != nil {
		return RazorpayOrder{}, err
	}
	return out, nil
}

// CreateCashfreeOrder creates a Cashfree order. Cashfree's API takes decimal
// rupees, so the paise amount becomes a 2-decimal JSON number here, at the
// wire boundary, and nowhere else.
func (c *Client) CreateCashfreeOrder(ctx context.Context, amountPaise int64, customerID string) (string, error) {
	body := map[string]any{
		"amount":     json.Number(domain.FormatMinorUnits(amountPaise)),
		"customerId": customerID,
	}

	var out struct {
		PaymentSessionID string `json:"payment_session_id"`
	}
	if err := c.postJSON(ctx, "/api/payment/cashfree-order", "create cashfree order", body, &out); err != nil {
		return "", err
	}
	return out.PaymentSessionID, nil
}

func (c *Client) getJSON(ctx context.Context, path, operation string, out any) error {
	resp, err := c.http.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return c.decode(resp, operation, out)
}

func (c *Client) postJSON(ctx context.Context, path, operation string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", operation, err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return c.decode(resp, operation, out)
}

func (c *Client) decode(resp *http.Response, operation string, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := httpclient.ParseResponseError(resp, operation)
		c.logger.Debug("backend call failed",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return err
	}

	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
