package seed

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/mackml1997/reserves-rarities/internal/config"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"go.uber.org/zap"
)

type legacyTenant struct {
	TenantID  string `json:"tenantId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Run seeds the tenant directory for startup bootstrap: the configured
// transaction-ref mappings first, then an optional one-shot import of a
// legacy tenants.json export. Both paths are idempotent, so re-running on
// every boot is safe.
func Run(ctx context.Context, cfg config.Config, tenants tenantdomain.Service, log *zap.Logger) error {
	log = log.Named("seed")

	pairs, err := cfg.ParseTenantMappings()
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		if err := tenants.AddMapping(ctx, pair[0], pair[1]); err != nil {
			return err
		}
	}
	if len(pairs) > 0 {
		log.Info("tenant mappings seeded", zap.Int("count", len(pairs)))
	}

	if file := strings.TrimSpace(cfg.TenantsFile); file != "" {
		return importLegacyFile(ctx, file, tenants, log)
	}
	return nil
}

func importLegacyFile(ctx context.Context, path string, tenants tenantdomain.Service, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var records []legacyTenant
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	imported := 0
	for _, record := range records {
		if strings.TrimSpace(record.TenantID) == "" {
			log.Warn("skipping legacy tenant without id", zap.String("email", record.Email))
			continue
		}
		if _, err := tenants.Register(ctx, tenantdomain.RegisterRequest{
			TenantID:  record.TenantID,
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Email:     record.Email,
		}); err != nil {
			return err
		}
		imported++
	}

	log.Info("legacy tenant file imported",
		zap.String("file", path),
		zap.Int("count", imported),
	)
	return nil
}
