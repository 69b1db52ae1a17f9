package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/gateway/stripe"
	"github.com/mackml1997/reserves-rarities/internal/pipeline"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test"

type fakeTenants struct {
	registered []tenantdomain.RegisterRequest
	listed     []tenantdomain.Registration
}

func (f *fakeTenants) Register(ctx context.Context, req tenantdomain.RegisterRequest) (*tenantdomain.Registration, error) {
	f.registered = append(f.registered, req)
	return &tenantdomain.Registration{TenantID: req.TenantID}, nil
}

func (f *fakeTenants) List(ctx context.Context) ([]tenantdomain.Registration, error) {
	return f.listed, nil
}

func (f *fakeTenants) Resolve(ctx context.Context, transactionRef string) (string, error) {
	return "", tenantdomain.ErrTenantNotMapped
}

func (f *fakeTenants) AddMapping(ctx context.Context, transactionRef, tenantID string) error {
	return nil
}

type fakePipeline struct {
	calls  int
	refs   []string
	result *pipeline.Result
	err    error
}

func (f *fakePipeline) Process(ctx context.Context, transactionRef string) (*pipeline.Result, error) {
	f.calls++
	f.refs = append(f.refs, transactionRef)
	return f.result, f.err
}

type serverFixture struct {
	engine   *gin.Engine
	tenants  *fakeTenants
	pipeline *fakePipeline
	now      time.Time
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tenants := &fakeTenants{}
	proc := &fakePipeline{result: &pipeline.Result{
		TransactionRef: "pi_123",
		TenantID:       "acme-llc",
		CustomerID:     "cust_1",
		OrderID:        "ord_abc",
		OrderNumber:    7001,
		Total:          100,
	}}

	srv := New(Params{
		Cfg: config.Config{
			StripeWebhookSecret: testWebhookSecret,
		},
		Log:      zap.NewNop(),
		Tenants:  tenants,
		Pipeline: proc,
		Clock:    clock.FixedClock{Instant: now},
	})

	engine := gin.New()
	RegisterRoutes(engine, srv, prometheus.NewRegistry())
	return &serverFixture{engine: engine, tenants: tenants, pipeline: proc, now: now}
}

func (f *serverFixture) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func signedWebhook(t *testing.T, eventType, intentID string, secret string, at time.Time) (string, map[string]string) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_1",
		"type": eventType,
		"data": map[string]any{"object": map[string]any{"id": intentID}},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return string(payload), map[string]string{
		stripe.SignatureHeader: stripe.SignPayload(payload, secret, at),
	}
}

func TestInstallRegistersTenant(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/install",
		`{"tenantId": "acme-llc", "email": "jane@acme.test"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Installation successful!")) {
		t.Fatalf("expected success message, got %s", rec.Body.String())
	}
	if len(f.tenants.registered) != 1 || f.tenants.registered[0].TenantID != "acme-llc" {
		t.Fatalf("expected one registration for acme-llc, got %+v", f.tenants.registered)
	}
}

func TestInstallRequiresTenantID(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/install", `{"email": "jane@acme.test"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(f.tenants.registered) != 0 {
		t.Fatalf("rejected install must not write, got %+v", f.tenants.registered)
	}
}

func TestCreateOrderRequiresTransactionRef(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/orders", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if f.pipeline.calls != 0 {
		t.Fatalf("expected no pipeline run, got %d", f.pipeline.calls)
	}
}

func TestCreateOrderRunsPipeline(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/orders", `{"transactionRef": "pi_123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.pipeline.calls != 1 || f.pipeline.refs[0] != "pi_123" {
		t.Fatalf("expected one pipeline run for pi_123, got %+v", f.pipeline.refs)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	f := newServerFixture(t)
	body, _ := signedWebhook(t, stripe.EventPaymentIntentSucceeded, "pi_123", "whsec_wrong", f.now)

	rec := f.do(t, http.MethodPost, "/webhooks/stripe", body, map[string]string{
		stripe.SignatureHeader: stripe.SignPayload([]byte(body), "whsec_wrong", f.now),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if f.pipeline.calls != 0 {
		t.Fatalf("expected no pipeline run on bad signature, got %d", f.pipeline.calls)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	f := newServerFixture(t)
	body, headers := signedWebhook(t, "charge.refunded", "ch_9", testWebhookSecret, f.now)

	rec := f.do(t, http.MethodPost, "/webhooks/stripe", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"ignored":true`)) {
		t.Fatalf("expected ignored ack, got %s", rec.Body.String())
	}
	if f.pipeline.calls != 0 {
		t.Fatalf("expected no pipeline run for ignored event, got %d", f.pipeline.calls)
	}
}

func TestWebhookProcessesPaymentIntentSucceeded(t *testing.T) {
	f := newServerFixture(t)
	body, headers := signedWebhook(t, stripe.EventPaymentIntentSucceeded, "pi_123", testWebhookSecret, f.now)

	rec := f.do(t, http.MethodPost, "/webhooks/stripe", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.pipeline.calls != 1 || f.pipeline.refs[0] != "pi_123" {
		t.Fatalf("expected pipeline run for pi_123, got %+v", f.pipeline.refs)
	}
}

func TestWebhookUnmappedTenantIsUnprocessable(t *testing.T) {
	f := newServerFixture(t)
	f.pipeline.result = nil
	f.pipeline.err = tenantdomain.ErrTenantNotMapped
	body, headers := signedWebhook(t, stripe.EventPaymentIntentSucceeded, "pi_orphan", testWebhookSecret, f.now)

	rec := f.do(t, http.MethodPost, "/webhooks/stripe", body, headers)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWebhookAlreadyProcessedIsAcknowledged(t *testing.T) {
	f := newServerFixture(t)
	f.pipeline.err = pipeline.ErrAlreadyProcessed
	body, headers := signedWebhook(t, stripe.EventPaymentIntentSucceeded, "pi_123", testWebhookSecret, f.now)

	rec := f.do(t, http.MethodPost, "/webhooks/stripe", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"alreadyProcessed":true`)) {
		t.Fatalf("expected replay ack, got %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
