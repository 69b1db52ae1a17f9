package domain

import (
	"context"

	"github.com/mackml1997/reserves-rarities/internal/commerce7"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
)

// Submitter builds and submits a platform order for a normalized transaction.
type Submitter interface {
	Submit(ctx context.Context, tenantID, customerID string, txn *gatewaydomain.Transaction) (*commerce7.Order, error)
}
