// Package gateway talks to the hosted payment provider that handles chapa and
// telebirr checkouts. Only the verification call and the webhook signature are
// used; creating checkouts happens in the storefront.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/ports"

	"github.com/go-resty/resty/v2"
)

const verifyPath = "/v1/transaction/verify/{txRef}"

type Config struct {
	BaseURL string
	Secret  string
	Timeout time.Duration
}

// Client implements ports.PaymentGateway over the provider's REST API.
type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.Secret != "" {
		c.SetAuthToken(cfg.Secret)
	}

	return &Client{http: c}
}

type verifyResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    *struct {
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

// CheckStatus asks the provider about txRef. A 404 or an empty data block means
// the provider has never seen the reference.
func (c *Client) CheckStatus(ctx context.Context, txRef string) (payment.GatewayResult, error) {
	var body verifyResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("txRef", txRef).
		SetResult(&body).
		Get(verifyPath)
	if err != nil {
		return payment.GatewayPending, fmt.Errorf("gateway verify %s: %w", txRef, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return payment.GatewayPending, fmt.Errorf("%w: %s", ports.ErrUnknownTransaction, txRef)
	}
	if resp.IsError() {
		return payment.GatewayPending, fmt.Errorf("gateway verify %s: unexpected status %d", txRef, resp.StatusCode())
	}
	if body.Data == nil {
		return payment.GatewayPending, fmt.Errorf("%w: %s", ports.ErrUnknownTransaction, txRef)
	}

	result, err := payment.ParseGatewayResult(strings.ToLower(body.Data.Status))
	if err != nil {
		return payment.GatewayPending, fmt.Errorf("gateway verify %s: %w", txRef, err)
	}
	return result, nil
}
