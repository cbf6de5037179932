package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Event describes an engine event to store in the outbox.
type Event struct {
	BusinessID snowflake.ID
	Type       string
	Payload    map[string]any
	DedupeKey  string
}

// InvoiceEvent is an outbox row. Downstream consumers (rendering, messaging)
// drain it outside this repository's scope.
type InvoiceEvent struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	BusinessID snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_invoice_events_dedupe,priority:1"`
	EventType  string            `gorm:"type:text;not null"`
	Payload    datatypes.JSONMap `gorm:"type:jsonb"`
	DedupeKey  *string           `gorm:"type:text;uniqueIndex:ux_invoice_events_dedupe,priority:2"`
	Published  bool              `gorm:"not null;default:false"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceEvent) TableName() string { return "invoice_events" }

// Outbox inserts engine events into the invoice_events table.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event using the default database connection.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	return o.publish(ctx, o.db, event)
}

// PublishTx stores an event inside an existing transaction, so the event and
// the invoice it describes commit as one logical unit.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, event Event) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, event)
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, event Event) error {
	if o == nil || db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	if event.BusinessID == 0 {
		return errors.New("invalid_business_id")
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

	row := InvoiceEvent{
		ID:         o.genID.Generate(),
		BusinessID: event.BusinessID,
		EventType:  name,
		Payload:    payload,
	}
	if dedupe := strings.TrimSpace(event.DedupeKey); dedupe != "" {
		row.DedupeKey = &dedupe
	}

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}
