package pipeline

import (
	"context"
	"errors"
	"time"
)

var ErrAlreadyProcessed = errors.New("transaction_already_processed")

// Result reports what one pipeline run produced. Errors carry the failure
// kind; callers get both so an already-processed transaction still yields the
// original order identifiers.
type Result struct {
	TransactionRef string  `json:"transactionRef"`
	TenantID       string  `json:"tenantId"`
	CustomerID     string  `json:"customerId,omitempty"`
	OrderID        string  `json:"orderId"`
	OrderNumber    int64   `json:"orderNumber"`
	Total          float64 `json:"total"`
}

// Processor turns a payment-processor transaction into a platform order.
type Processor interface {
	Process(ctx context.Context, transactionRef string) (*Result, error)
}

type processedTransaction struct {
	TransactionRef string    `gorm:"column:transaction_ref;primaryKey"`
	TenantID       string    `gorm:"column:tenant_id"`
	OrderID        string    `gorm:"column:order_id"`
	OrderNumber    int64     `gorm:"column:order_number"`
	ProcessedAt    time.Time `gorm:"column:processed_at"`
}

func (processedTransaction) TableName() string { return "processed_transactions" }
