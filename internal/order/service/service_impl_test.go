package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/mackml1997/reserves-rarities/internal/commerce7"
	"github.com/mackml1997/reserves-rarities/internal/config"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"go.uber.org/zap"
)

func newSubmitter(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c7 := commerce7.NewClient(config.Config{
		C7APIURL:    server.URL,
		C7AppID:     "app-id",
		C7SecretKey: "app-secret",
	}, zap.NewNop())
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return &Service{c7: c7, log: zap.NewNop(), genID: node}
}

func sampleTransaction() *gatewaydomain.Transaction {
	return &gatewaydomain.Transaction{
		Ref:   "pi_123",
		Email: "a@b.com",
		Name:  "Jane Smith",
		Shipping: gatewaydomain.Address{
			Line1:      "1 Main St",
			City:       "Napa",
			State:      "CA",
			PostalCode: "94558",
			Country:    "US",
		},
		Items: []gatewaydomain.LineItem{
			{ProductID: "sku1", Quantity: 2, Price: 50},
		},
	}
}

func TestSubmitBuildsOrderPayload(t *testing.T) {
	var received commerce7.Order
	submitter := newSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/order" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode order: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "order_1"}`))
	})

	created, err := submitter.Submit(context.Background(), "acme-llc", "cust_1", sampleTransaction())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "order_1" {
		t.Fatalf("expected platform order id, got %q", created.ID)
	}

	if received.CustomerID != "cust_1" {
		t.Fatalf("unexpected customerId %q", received.CustomerID)
	}
	if received.SubTotal != 100 || received.Total != 100 {
		t.Fatalf("expected subtotal and total 100, got %v/%v", received.SubTotal, received.Total)
	}
	if received.PaymentStatus != "Paid" || received.FulfillmentStatus != "Not Fulfilled" {
		t.Fatalf("unexpected statuses %q/%q", received.PaymentStatus, received.FulfillmentStatus)
	}
	if received.OrderNumber == 0 {
		t.Fatalf("expected assigned order number")
	}
	if received.ExternalOrderNumber != "stripe-pi_123" {
		t.Fatalf("unexpected external order number %q", received.ExternalOrderNumber)
	}
	if received.ShipTo.FirstName != "Valued" || received.ShipTo.LastName != "Customer" {
		t.Fatalf("expected placeholder recipient, got %+v", received.ShipTo)
	}
	if received.ShipTo.City != "Napa" {
		t.Fatalf("expected shipping city from transaction, got %q", received.ShipTo.City)
	}
	if len(received.Items) != 1 || received.Items[0] != (commerce7.OrderItem{ProductID: "sku1", Quantity: 2, Price: 50}) {
		t.Fatalf("unexpected items %+v", received.Items)
	}
	if received.AppData["transactionRef"] != "pi_123" {
		t.Fatalf("expected transaction ref in appData, got %v", received.AppData)
	}
}

func TestSubmitOrderNumbersAreUnique(t *testing.T) {
	var numbers []int64
	submitter := newSubmitter(t, func(w http.ResponseWriter, r *http.Request) {
		var order commerce7.Order
		_ = json.NewDecoder(r.Body).Decode(&order)
		numbers = append(numbers, order.OrderNumber)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "order"}`))
	})

	for i := 0; i < 3; i++ {
		if _, err := submitter.Submit(context.Background(), "acme-llc", "cust_1", sampleTransaction()); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	seen := make(map[int64]bool, len(numbers))
	for _, n := range numbers {
		if seen[n] {
			t.Fatalf("duplicate order number %d", n)
		}
		seen[n] = true
	}
}
