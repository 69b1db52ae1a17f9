package logger

import (
	"context"

	"github.com/mackml1997/reserves-rarities/internal/config"
	obscontext "github.com/mackml1997/reserves-rarities/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// New builds the process-wide zap logger and installs it as the global so
// FromContext works everywhere without threading the logger explicitly.
func New(cfg config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.Named("rrbridge")
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with the trace, span,
// request and tenant identifiers carried by the context.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	fields := make([]zap.Field, 0, 4)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if tenantID := obscontext.TenantIDFromContext(ctx); tenantID != "" {
		fields = append(fields, zap.String("tenant_id", tenantID))
	}
	if ref := obscontext.TransactionRefFromContext(ctx); ref != "" {
		fields = append(fields, zap.String("transaction_ref", ref))
	}
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
