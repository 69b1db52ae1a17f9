package stripe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	"github.com/mackml1997/reserves-rarities/internal/observability/tracing"
	"github.com/mackml1997/reserves-rarities/internal/upstream"
	"go.uber.org/zap"
)

const serviceName = "stripe"

// Client talks to the Stripe charges API and normalizes transactions.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	log       *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.StripeAPIURL), "/"),
		secretKey: strings.TrimSpace(cfg.StripeSecretKey),
		http:      tracing.WrapHTTPClient(&http.Client{Timeout: 15 * time.Second}),
		log:       log.Named("gateway.stripe"),
	}
}

type charge struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	BillingDetails struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"billing_details"`
	Shipping *struct {
		Name    string `json:"name"`
		Address struct {
			Line1      string `json:"line1"`
			Line2      string `json:"line2"`
			City       string `json:"city"`
			State      string `json:"state"`
			PostalCode string `json:"postal_code"`
			Country    string `json:"country"`
		} `json:"address"`
	} `json:"shipping"`
	Metadata map[string]string `json:"metadata"`
}

type chargeList struct {
	Data []charge `json:"data"`
}

// Fetch retrieves every charge of a transaction and produces the normalized
// shape the pipeline works with. Identity and shipping come from the first
// charge only; every charge contributes one line item.
func (c *Client) Fetch(ctx context.Context, transactionRef string) (*domain.Transaction, error) {
	ref := strings.TrimSpace(transactionRef)
	if ref == "" {
		return nil, domain.ErrMissingTransactionRef
	}

	endpoint := c.baseURL + "/v1/charges?payment_intent=" + url.QueryEscape(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("charge lookup failed",
			zap.String("transaction_ref", ref),
			zap.Int("status", resp.StatusCode),
			zap.Any("request_headers", logger.MaskHeaders(req.Header)),
		)
		return nil, &upstream.Error{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var charges chargeList
	if err := json.Unmarshal(body, &charges); err != nil {
		return nil, err
	}

	txn := normalize(ref, charges.Data)
	c.log.Debug("transaction fetched",
		zap.String("transaction_ref", ref),
		zap.Int("charges", len(charges.Data)),
		zap.Int("items", len(txn.Items)),
	)
	return txn, nil
}

func normalize(ref string, charges []charge) *domain.Transaction {
	txn := &domain.Transaction{
		Ref:   ref,
		Email: domain.UnknownEmail,
		Shipping: domain.Address{
			Line1:      domain.UnknownField,
			Line2:      "",
			City:       domain.UnknownField,
			State:      domain.UnknownField,
			PostalCode: domain.UnknownField,
			Country:    domain.UnknownField,
		},
	}
	if len(charges) == 0 {
		return txn
	}

	first := charges[0]
	if email := strings.TrimSpace(first.BillingDetails.Email); email != "" {
		txn.Email = email
	}
	txn.Name = strings.TrimSpace(first.BillingDetails.Name)
	if first.Shipping != nil {
		addr := first.Shipping.Address
		txn.Shipping = domain.Address{
			Line1:      orUnknown(addr.Line1),
			Line2:      strings.TrimSpace(addr.Line2),
			City:       orUnknown(addr.City),
			State:      orUnknown(addr.State),
			PostalCode: orUnknown(addr.PostalCode),
			Country:    orUnknown(addr.Country),
		}
	}

	txn.Items = make([]domain.LineItem, 0, len(charges))
	for _, ch := range charges {
		txn.Items = append(txn.Items, domain.LineItem{
			ProductID: strings.TrimSpace(ch.Metadata["product_id"]),
			Quantity:  parseQuantity(ch.Metadata["quantity"]),
			Price:     float64(ch.Amount) / 100,
		})
	}
	return txn
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.UnknownField
	}
	return value
}

func parseQuantity(raw string) int {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity <= 0 {
		return 1
	}
	return quantity
}
