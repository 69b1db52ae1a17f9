package commerce7

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	"github.com/mackml1997/reserves-rarities/internal/observability/tracing"
	"github.com/mackml1997/reserves-rarities/internal/upstream"
	"go.uber.org/zap"
)

const serviceName = "commerce7"

// tenantHeader selects the tenant namespace on every platform request; the
// app credentials themselves are tenant-independent.
const tenantHeader = "tenant"

var ErrMissingTenant = errors.New("missing_tenant")

// Client is the low-level Commerce7 REST client shared by the customer
// resolver and the order submitter.
type Client struct {
	baseURL   string
	appID     string
	secretKey string
	http      *http.Client
	log       *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.C7APIURL), "/"),
		appID:     strings.TrimSpace(cfg.C7AppID),
		secretKey: strings.TrimSpace(cfg.C7SecretKey),
		http:      tracing.WrapHTTPClient(&http.Client{Timeout: 15 * time.Second}),
		log:       log.Named("commerce7.client"),
	}
}

// SearchCustomersByEmail queries the tenant's customers with an exact email
// match. Match ordering is whatever the platform returns.
func (c *Client) SearchCustomersByEmail(ctx context.Context, tenantID, email string) ([]Customer, error) {
	query := url.Values{}
	query.Set("q", email)

	var result customerSearchResponse
	if err := c.do(ctx, tenantID, http.MethodGet, "/customer", query, nil, &result); err != nil {
		return nil, err
	}
	return result.Customers, nil
}

// CreateCustomer registers a new customer on the tenant.
func (c *Client) CreateCustomer(ctx context.Context, tenantID string, req CreateCustomerRequest) (*Customer, error) {
	var created Customer
	if err := c.do(ctx, tenantID, http.MethodPost, "/customer", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateOrder submits a new order to the tenant.
func (c *Client) CreateOrder(ctx context.Context, tenantID string, order Order) (*Order, error) {
	var created Order
	if err := c.do(ctx, tenantID, http.MethodPost, "/order", nil, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, tenantID, method, path string, query url.Values, body, out any) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return ErrMissingTenant
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.appID, c.secretKey)
	req.Header.Set(tenantHeader, tenantID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("platform request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Any("request_headers", logger.MaskHeaders(req.Header)),
		)
		return &upstream.Error{
			Service:    serviceName + "/" + tenantID,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}
