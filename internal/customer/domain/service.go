package domain

import (
	"context"
	"errors"
)

var ErrCustomerUnresolved = errors.New("customer_unresolved")

// Resolver finds or creates the platform customer for a normalized identity.
type Resolver interface {
	Resolve(ctx context.Context, tenantID, email, displayName string) (string, error)
}
