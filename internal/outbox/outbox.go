package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Email message lifecycle inside the outbox.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusSent       = "SENT"
	StatusFailed     = "FAILED"
	StatusDead       = "DEAD"
)

// @migration
type EmailMessage struct {
	ID string `gorm:"primaryKey"`

	Subject     string
	PlainBody   string
	HtmlBody    string
	FromAddress string

	ToAddresses pq.StringArray `gorm:"type:text[]"`

	Status        string `gorm:"default:PENDING"`
	Attempts      int
	LastError     *string
	NextAttemptAt *time.Time
	LockedAt      *time.Time
	LockedBy      *string

	CreatedAt time.Time
}

// Outbox persists notifications as rows inside the store; a polling
// dispatcher publishes them to the queue afterwards. Implements
// notify.Dispatcher. Enqueueing is deliberately not part of the
// triggering transaction: a queue outage must not roll back a sending
// or an application write.
type Outbox struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Outbox {
	return &Outbox{db: db}
}

func (o *Outbox) Send(ctx context.Context, subject, plainBody, from, to, htmlBody string) error {
	return o.SendMany(ctx, subject, plainBody, from, []string{to}, htmlBody)
}

func (o *Outbox) SendMany(ctx context.Context, subject, plainBody, from string, to []string, htmlBody string) error {

	message := EmailMessage{
		ID:          uuid.NewString(),
		Subject:     subject,
		PlainBody:   plainBody,
		HtmlBody:    htmlBody,
		FromAddress: from,
		ToAddresses: to,
		Status:      StatusPending,
	}

	return o.db.WithContext(ctx).Create(&message).Error
}
