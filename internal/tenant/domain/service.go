package domain

import (
	"context"
	"errors"
)

var (
	ErrMissingTenantID = errors.New("missing_tenant_id")
	ErrTenantNotMapped = errors.New("tenant_not_mapped")
	ErrMissingRef      = errors.New("missing_transaction_ref")
)

type RegisterRequest struct {
	TenantID  string
	FirstName string
	LastName  string
	Email     string
}

type Service interface {
	// Register records an app installation. Repeated installs for the same
	// tenant update the stored contact details instead of duplicating rows.
	Register(ctx context.Context, req RegisterRequest) (*Registration, error)
	List(ctx context.Context) ([]Registration, error)
	// Resolve maps a transaction reference onto a tenant identifier.
	Resolve(ctx context.Context, transactionRef string) (string, error)
	AddMapping(ctx context.Context, transactionRef, tenantID string) error
}
