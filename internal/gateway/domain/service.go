package domain

import (
	"context"
	"errors"
)

var (
	ErrMissingTransactionRef = errors.New("missing_transaction_ref")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrSignatureExpired      = errors.New("signature_expired")
	ErrInvalidPayload        = errors.New("invalid_payload")
)

// Gateway fetches a transaction from the payment processor and normalizes it.
type Gateway interface {
	Fetch(ctx context.Context, transactionRef string) (*Transaction, error)
}
