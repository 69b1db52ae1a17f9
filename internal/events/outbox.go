package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventTypeOrderCreated is published once per successfully bridged order.
const EventTypeOrderCreated = "order.created"

// Event describes a connector event to store in the outbox.
type Event struct {
	TenantID  string
	Type      string
	Payload   map[string]any
	DedupeKey string
}

// Outbox inserts connector events into the order_events table so a future
// publisher can relay them without coupling the pipeline to a broker.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event. The dedupe key keeps one row per transaction
// reference even when the pipeline is re-triggered.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	if o == nil || o.db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	tenantID := strings.TrimSpace(event.TenantID)
	if tenantID == "" {
		return errors.New("invalid_tenant_id")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	dedupe := strings.TrimSpace(event.DedupeKey)
	var dedupeValue any
	if dedupe != "" {
		dedupeValue = dedupe
	}

	now := time.Now().UTC()
	return o.db.WithContext(ctx).Exec(
		`INSERT INTO order_events (id, tenant_id, event_type, payload, dedupe_key, published, created_at)
		 VALUES (?, ?, ?, ?, ?, false, ?)
		 ON CONFLICT (tenant_id, dedupe_key) DO NOTHING`,
		o.genID.Generate(),
		tenantID,
		name,
		payload,
		dedupeValue,
		now,
	).Error
}
