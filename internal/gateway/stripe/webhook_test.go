package stripe

import (
	"errors"
	"testing"
	"time"

	"github.com/mackml1997/reserves-rarities/internal/gateway/domain"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	header := SignPayload(payload, "whsec_test", now)

	if err := VerifySignature(payload, header, "whsec_test", DefaultTolerance, now); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Now()
	header := SignPayload(payload, "whsec_a", now)

	err := VerifySignature(payload, header, "whsec_b", DefaultTolerance, now)
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	signedAt := time.Now().Add(-time.Hour)
	header := SignPayload(payload, "whsec_test", signedAt)

	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance, time.Now())
	if !errors.Is(err, domain.ErrSignatureExpired) {
		t.Fatalf("expected ErrSignatureExpired, got %v", err)
	}
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	err := VerifySignature([]byte(`{}`), "v1=zzzz", "whsec_test", DefaultTolerance, time.Now())
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent([]byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`))
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.Type != EventPaymentIntentSucceeded {
		t.Fatalf("unexpected type %q", event.Type)
	}
	if event.Data.Object.ID != "pi_123" {
		t.Fatalf("unexpected object id %q", event.Data.Object.ID)
	}
}

func TestParseEventRejectsGarbage(t *testing.T) {
	if _, err := ParseEvent([]byte(`not json`)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := ParseEvent([]byte(`{"id":"evt"}`)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for missing type, got %v", err)
	}
}
