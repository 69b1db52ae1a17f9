package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the connector needs. Values come from
// environment variables; an optional .env-style file can be pointed at with
// CONFIG_FILE for local development.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        int    `mapstructure:"PORT"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripeAPIURL        string `mapstructure:"STRIPE_API_URL"`

	C7AppID     string `mapstructure:"C7_APP_ID"`
	C7SecretKey string `mapstructure:"C7_SECRET_KEY"`
	C7APIURL    string `mapstructure:"C7_API_URL"`

	DatabaseDSN string `mapstructure:"DATABASE_DSN"`

	// TenantMappings seeds the transaction-ref to tenant directory at startup,
	// formatted as "ref=tenant" pairs separated by commas.
	TenantMappings string `mapstructure:"TENANT_MAPPINGS"`
	// TenantsFile points at a legacy tenants.json export to import once.
	TenantsFile string `mapstructure:"TENANTS_FILE"`

	TracingEnabled   bool    `mapstructure:"TRACING_ENABLED"`
	TracingEndpoint  string  `mapstructure:"TRACING_ENDPOINT"`
	TracingProtocol  string  `mapstructure:"TRACING_PROTOCOL"`
	TracingSampling  float64 `mapstructure:"TRACING_SAMPLING_RATIO"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
	MetricsNamespace string  `mapstructure:"METRICS_NAMESPACE"`
}

var (
	ErrMissingStripeKey      = errors.New("missing_stripe_secret_key")
	ErrMissingC7Credentials  = errors.New("missing_commerce7_credentials")
	ErrInvalidTenantMappings = errors.New("invalid_tenant_mappings")
)

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", 3000)
	v.SetDefault("STRIPE_API_URL", "https://api.stripe.com")
	v.SetDefault("C7_API_URL", "https://api.commerce7.com/v1")
	v.SetDefault("DATABASE_DSN", "file:rrbridge.db")
	v.SetDefault("TRACING_PROTOCOL", "grpc")
	v.SetDefault("TRACING_SAMPLING_RATIO", 0.1)
	v.SetDefault("SERVICE_VERSION", "dev")
	v.SetDefault("METRICS_NAMESPACE", "rrbridge")

	if file := strings.TrimSpace(os.Getenv("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}
	v.AutomaticEnv()
	bindKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bindKeys forces viper to consider each env key even when no config file
// supplies it; AutomaticEnv alone does not populate Unmarshal.
func bindKeys(v *viper.Viper) {
	keys := []string{
		"ENVIRONMENT", "PORT",
		"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "STRIPE_API_URL",
		"C7_APP_ID", "C7_SECRET_KEY", "C7_API_URL",
		"DATABASE_DSN", "TENANT_MAPPINGS", "TENANTS_FILE",
		"TRACING_ENABLED", "TRACING_ENDPOINT", "TRACING_PROTOCOL",
		"TRACING_SAMPLING_RATIO", "SERVICE_VERSION", "METRICS_NAMESPACE",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.StripeSecretKey) == "" {
		return ErrMissingStripeKey
	}
	if strings.TrimSpace(c.C7AppID) == "" || strings.TrimSpace(c.C7SecretKey) == "" {
		return ErrMissingC7Credentials
	}
	if _, err := c.ParseTenantMappings(); err != nil {
		return err
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// ParseTenantMappings splits TENANT_MAPPINGS into ref/tenant pairs, preserving
// the order entries were written in.
func (c Config) ParseTenantMappings() ([][2]string, error) {
	raw := strings.TrimSpace(c.TenantMappings)
	if raw == "" {
		return nil, nil
	}
	entries := strings.Split(raw, ",")
	pairs := make([][2]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ref, tenant, found := strings.Cut(entry, "=")
		ref = strings.TrimSpace(ref)
		tenant = strings.TrimSpace(tenant)
		if !found || ref == "" || tenant == "" {
			return nil, ErrInvalidTenantMappings
		}
		pairs = append(pairs, [2]string{ref, tenant})
	}
	return pairs, nil
}
