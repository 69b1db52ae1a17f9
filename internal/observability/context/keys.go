package context

import "context"

type contextKey string

const (
	requestIDKey      contextKey = "observability_request_id"
	tenantIDKey       contextKey = "observability_tenant_id"
	transactionRefKey contextKey = "observability_transaction_ref"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithTenantID(ctx context.Context, tenantID string) context.Context {
	if ctx == nil || tenantID == "" {
		return ctx
	}
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

func TenantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(tenantIDKey).(string)
	return value
}

func WithTransactionRef(ctx context.Context, ref string) context.Context {
	if ctx == nil || ref == "" {
		return ctx
	}
	return context.WithValue(ctx, transactionRefKey, ref)
}

func TransactionRefFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(transactionRefKey).(string)
	return value
}
