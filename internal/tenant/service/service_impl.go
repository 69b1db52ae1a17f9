package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mackml1997/reserves-rarities/internal/cache"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	"github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const mappingCacheTTL = 5 * time.Minute

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
	Cache cache.Cache[string, string]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
	cache cache.Cache[string, string]
}

func NewService(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
		cache: p.Cache,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Registration, error) {
	tenantID := strings.TrimSpace(req.TenantID)
	if tenantID == "" {
		return nil, domain.ErrMissingTenantID
	}

	reg := &domain.Registration{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		InstalledAt: s.clock.Now(),
	}
	if err := s.repo.UpsertRegistration(ctx, reg); err != nil {
		return nil, err
	}

	s.log.Info("tenant registered", zap.String("tenant_id", tenantID))
	return reg, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Registration, error) {
	return s.repo.ListRegistrations(ctx)
}

func (s *Service) Resolve(ctx context.Context, transactionRef string) (string, error) {
	ref := strings.TrimSpace(transactionRef)
	if ref == "" {
		return "", domain.ErrMissingRef
	}

	if tenantID, ok := s.cache.Get(ref); ok {
		return tenantID, nil
	}

	tenantID, err := s.repo.ResolveTenant(ctx, ref)
	if err != nil {
		return "", err
	}
	s.cache.Set(ref, tenantID, mappingCacheTTL)
	return tenantID, nil
}

func (s *Service) AddMapping(ctx context.Context, transactionRef, tenantID string) error {
	ref := strings.TrimSpace(transactionRef)
	if ref == "" {
		return domain.ErrMissingRef
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return domain.ErrMissingTenantID
	}

	s.cache.Delete(ref)
	return s.repo.AppendMapping(ctx, &domain.Mapping{
		TransactionRef: ref,
		TenantID:       tenantID,
		CreatedAt:      s.clock.Now(),
	})
}
