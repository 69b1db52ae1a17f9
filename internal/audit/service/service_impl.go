package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mackml1997/reserves-rarities/internal/audit/domain"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) AuditLog(ctx context.Context, tenantID string, actor domain.ActorType, action, targetType, targetID string, metadata map[string]any) error {
	entry := &domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  string(actor),
		Action:     strings.TrimSpace(action),
		TargetType: strings.TrimSpace(targetType),
		Metadata:   datatypes.JSONMap(metadata),
		CreatedAt:  s.clock.Now(),
	}
	if tenantID = strings.TrimSpace(tenantID); tenantID != "" {
		entry.TenantID = &tenantID
	}
	if targetID = strings.TrimSpace(targetID); targetID != "" {
		entry.TargetID = &targetID
	}
	if entry.Metadata == nil {
		entry.Metadata = datatypes.JSONMap{}
	}

	return s.db.WithContext(ctx).Create(entry).Error
}
