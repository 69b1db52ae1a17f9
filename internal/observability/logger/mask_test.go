package logger

import "testing"

func TestMaskAuthorizationBearer(t *testing.T) {
	got := MaskAuthorization("Bearer sk_test_abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskAuthorizationBasic(t *testing.T) {
	got := MaskAuthorization("Basic YXBwOnNlY3JldA==")
	want := "Basic ****dA=="
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskHeadersStripeSignature(t *testing.T) {
	headers := map[string][]string{
		"Stripe-Signature": {"t=1700000000,v1=deadbeef"},
		"Content-Type":     {"application/json"},
	}
	masked := MaskHeaders(headers)
	if masked["Stripe-Signature"] != "****beef" {
		t.Fatalf("expected masked signature, got %q", masked["Stripe-Signature"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Fatalf("expected content type untouched, got %q", masked["Content-Type"])
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"token":    "abc12345",
		"nested": map[string]any{
			"api_key": "key_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["token"] != "****2345" {
		t.Fatalf("expected masked token, got %v", masked["token"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["api_key"] != "****5678" {
		t.Fatalf("expected masked api_key, got %v", nested["api_key"])
	}
}
