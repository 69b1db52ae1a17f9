package domain

import "context"

type Service interface {
	// AuditLog records one action. tenantID may be empty for actions that are
	// not tenant-scoped.
	AuditLog(ctx context.Context, tenantID string, actor ActorType, action, targetType, targetID string, metadata map[string]any) error
}
