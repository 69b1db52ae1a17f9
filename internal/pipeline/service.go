package pipeline

import (
	"context"
	"errors"
	"strings"

	auditdomain "github.com/mackml1997/reserves-rarities/internal/audit/domain"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	customerdomain "github.com/mackml1997/reserves-rarities/internal/customer/domain"
	"github.com/mackml1997/reserves-rarities/internal/events"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	obscontext "github.com/mackml1997/reserves-rarities/internal/observability/context"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	"github.com/mackml1997/reserves-rarities/internal/observability/tracing"
	orderdomain "github.com/mackml1997/reserves-rarities/internal/order/domain"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Tenants   tenantdomain.Service
	Gateway   gatewaydomain.Gateway
	Customers customerdomain.Resolver
	Orders    orderdomain.Submitter
	Outbox    *events.Outbox
	Audit     auditdomain.Service
	Clock     clock.Clock
}

// Service runs the linear order pipeline: resolve tenant, fetch transaction,
// resolve customer, submit order. Any step's failure ends the run; there is
// no compensation for partially completed work (a created customer stays).
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	tenants   tenantdomain.Service
	gateway   gatewaydomain.Gateway
	customers customerdomain.Resolver
	orders    orderdomain.Submitter
	outbox    *events.Outbox
	audit     auditdomain.Service
	clock     clock.Clock
	tracer    trace.Tracer
}

func NewService(p Params) Processor {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("pipeline"),
		tenants:   p.Tenants,
		gateway:   p.Gateway,
		customers: p.Customers,
		orders:    p.Orders,
		outbox:    p.Outbox,
		audit:     p.Audit,
		clock:     p.Clock,
		tracer:    otel.Tracer("rrbridge/pipeline"),
	}
}

func (s *Service) Process(ctx context.Context, transactionRef string) (*Result, error) {
	ref := strings.TrimSpace(transactionRef)
	ctx, span := s.tracer.Start(ctx, "pipeline.process")
	defer span.End()
	ctx = obscontext.WithTransactionRef(ctx, ref)

	result, err := s.run(ctx, span, ref)
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			logger.FromContext(ctx).Info("transaction already processed",
				zap.String("transaction_ref", ref),
				zap.String("order_id", result.OrderID),
			)
			return result, err
		}
		if safeErr := tracing.SafeError(err); safeErr != nil {
			span.RecordError(safeErr)
		}
		span.SetStatus(codes.Error, "pipeline failed")
		logger.FromContext(ctx).Error("order pipeline failed",
			zap.String("transaction_ref", ref),
			zap.Error(err),
		)
		return nil, err
	}

	logger.FromContext(ctx).Info("order pipeline completed",
		zap.String("transaction_ref", ref),
		zap.String("tenant_id", result.TenantID),
		zap.String("order_id", result.OrderID),
		zap.Int64("order_number", result.OrderNumber),
		zap.Float64("total", result.Total),
	)
	return result, nil
}

func (s *Service) run(ctx context.Context, span trace.Span, ref string) (*Result, error) {
	if ref == "" {
		return nil, gatewaydomain.ErrMissingTransactionRef
	}

	tenantID, err := s.tenants.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	ctx = obscontext.WithTenantID(ctx, tenantID)
	span.SetAttributes(tracing.SafeAttributes(attribute.String("tenant_id", tenantID))...)

	prior, err := s.findProcessed(ctx, ref)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return &Result{
			TransactionRef: prior.TransactionRef,
			TenantID:       prior.TenantID,
			OrderID:        prior.OrderID,
			OrderNumber:    prior.OrderNumber,
		}, ErrAlreadyProcessed
	}

	txn, err := s.gateway.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	customerID, err := s.customers.Resolve(ctx, tenantID, txn.Email, txn.Name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(customerID) == "" {
		return nil, customerdomain.ErrCustomerUnresolved
	}

	created, err := s.orders.Submit(ctx, tenantID, customerID, txn)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TransactionRef: ref,
		TenantID:       tenantID,
		CustomerID:     customerID,
		OrderID:        created.ID,
		OrderNumber:    created.OrderNumber,
		Total:          created.Total,
	}

	if err := s.markProcessed(ctx, result); err != nil {
		return nil, err
	}
	s.recordBookkeeping(ctx, result)

	return result, nil
}

func (s *Service) findProcessed(ctx context.Context, ref string) (*processedTransaction, error) {
	var row processedTransaction
	err := s.db.WithContext(ctx).
		Where("transaction_ref = ?", ref).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *Service) markProcessed(ctx context.Context, result *Result) error {
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO processed_transactions (transaction_ref, tenant_id, order_id, order_number, processed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (transaction_ref) DO NOTHING`,
		result.TransactionRef,
		result.TenantID,
		result.OrderID,
		result.OrderNumber,
		s.clock.Now(),
	).Error
}

// recordBookkeeping publishes the outbox event and audit entry. Both are
// best-effort: the order already exists on the platform, so their failure
// must not fail the run.
func (s *Service) recordBookkeeping(ctx context.Context, result *Result) {
	if err := s.outbox.Publish(ctx, events.Event{
		TenantID:  result.TenantID,
		Type:      events.EventTypeOrderCreated,
		DedupeKey: result.TransactionRef,
		Payload: map[string]any{
			"transaction_ref": result.TransactionRef,
			"order_id":        result.OrderID,
			"order_number":    result.OrderNumber,
			"customer_id":     result.CustomerID,
			"total":           result.Total,
		},
	}); err != nil {
		logger.FromContext(ctx).Warn("outbox publish failed", zap.Error(err))
	}

	if err := s.audit.AuditLog(ctx, result.TenantID, auditdomain.ActorTypeSystem,
		"order.create", "order", result.OrderID, map[string]any{
			"transaction_ref": result.TransactionRef,
			"customer_id":     result.CustomerID,
			"order_number":    result.OrderNumber,
			"total":           result.Total,
		}); err != nil {
		logger.FromContext(ctx).Warn("audit log failed", zap.Error(err))
	}
}
