package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Registration is one installed tenant of the commerce platform.
type Registration struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    string       `gorm:"column:tenant_id;uniqueIndex;not null" json:"tenantId"`
	FirstName   string       `gorm:"column:first_name" json:"firstName"`
	LastName    string       `gorm:"column:last_name" json:"lastName"`
	Email       string       `gorm:"column:email" json:"email"`
	InstalledAt time.Time    `gorm:"column:installed_at;not null" json:"installedAt"`
}

func (Registration) TableName() string { return "tenants" }

// Mapping ties a payment-processor transaction reference to the tenant whose
// store the resulting order belongs to.
type Mapping struct {
	TransactionRef string    `gorm:"column:transaction_ref;primaryKey" json:"transactionRef"`
	TenantID       string    `gorm:"column:tenant_id;not null" json:"tenantId"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

func (Mapping) TableName() string { return "tenant_mappings" }
