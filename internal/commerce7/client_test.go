package commerce7

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/upstream"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.Config{
		C7APIURL:    server.URL,
		C7AppID:     "app-id",
		C7SecretKey: "app-secret",
	}, zap.NewNop())
}

func TestSearchCustomersSendsAuthAndTenant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("app-id:app-secret"))
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("tenant"); got != "acme-llc" {
			t.Errorf("unexpected tenant header %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "a@b.com" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"customers": [{"id": "cust_1", "emails": [{"email": "a@b.com"}]}]}`))
	})

	customers, err := client.SearchCustomersByEmail(context.Background(), "acme-llc", "a@b.com")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "cust_1" {
		t.Fatalf("unexpected customers: %+v", customers)
	}
}

func TestCreateCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customer" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cust_new"}`))
	})

	created, err := client.CreateCustomer(context.Background(), "acme-llc", CreateCustomerRequest{
		FirstName:            "Jane",
		LastName:             "Smith",
		Emails:               []CustomerEmail{{Email: "a@b.com"}},
		EmailMarketingStatus: "Subscribed",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if created.ID != "cust_new" {
		t.Fatalf("unexpected id %q", created.ID)
	}
}

func TestRequestRequiresTenant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.SearchCustomersByEmail(context.Background(), " ", "a@b.com")
	if !errors.Is(err, ErrMissingTenant) {
		t.Fatalf("expected ErrMissingTenant, got %v", err)
	}
}

func TestUpstreamErrorCarriesTenantAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "invalid order"}`))
	})

	_, err := client.CreateOrder(context.Background(), "acme-llc", Order{})
	var upstreamErr *upstream.Error
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected upstream.Error, got %v", err)
	}
	if upstreamErr.Service != "commerce7/acme-llc" {
		t.Fatalf("unexpected service %q", upstreamErr.Service)
	}
	if upstreamErr.Body != `{"message": "invalid order"}` {
		t.Fatalf("unexpected body %q", upstreamErr.Body)
	}
}
