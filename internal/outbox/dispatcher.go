package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Producer publishes a raw payload to a queue topic.
type Producer interface {
	Produce(message []byte, topic string) error
}

// EmailPayload is the wire format consumed by the mailer worker.
type EmailPayload struct {
	ID        string   `json:"id"`
	Subject   string   `json:"subject"`
	PlainBody string   `json:"plain_body"`
	HtmlBody  string   `json:"html_body"`
	From      string   `json:"from"`
	To        []string `json:"to"`
}

// Dispatcher polls the outbox and pushes pending messages to the queue.
// Claims rows with SKIP LOCKED so several instances can run at once;
// stale PROCESSING rows are reclaimed after LockTimeout. Messages over
// MaxAttempts go terminal.
type Dispatcher struct {
	DB           *gorm.DB
	Producer     Producer
	Logger       *logrus.Logger
	Topic        string
	DispatcherID string

	BatchSize      int
	PollInterval   time.Duration
	LockTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

func NewDispatcher(db *gorm.DB, producer Producer, logger *logrus.Logger, topic string) *Dispatcher {
	return &Dispatcher{
		DB:             db,
		Producer:       producer,
		Logger:         logger,
		Topic:          topic,
		DispatcherID:   uuid.NewString(),
		BatchSize:      50,
		PollInterval:   500 * time.Millisecond,
		LockTimeout:    30 * time.Second,
		MaxAttempts:    20,
		InitialBackoff: 5 * time.Second,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.dispatchOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.PollInterval):
		}
	}
}

func (d *Dispatcher) dispatchOnce(ctx context.Context) {
	now := time.Now().UTC()
	staleBefore := now.Add(-d.LockTimeout)

	var claimed []EmailMessage
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Where(`
				(
					status IN ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
				)
				OR
				(
					status = ? AND locked_at IS NOT NULL AND locked_at <= ?
				)
			`, []string{StatusPending, StatusFailed}, now, StatusProcessing, staleBefore).
			Order("created_at ASC").
			Limit(d.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}

		for i := range claimed {
			if d.MaxAttempts > 0 && claimed[i].Attempts >= d.MaxAttempts {
				msg := fmt.Sprintf("max publish attempts exceeded (%d)", d.MaxAttempts)
				claimed[i].Status = StatusDead
				if err := tx.Model(&EmailMessage{}).Where("id = ?", claimed[i].ID).Updates(map[string]interface{}{
					"status":          StatusDead,
					"last_error":      &msg,
					"next_attempt_at": nil,
					"locked_at":       nil,
					"locked_by":       nil,
				}).Error; err != nil {
					return err
				}
				continue
			}

			claimed[i].Status = StatusProcessing
			claimed[i].LockedAt = &now
			claimed[i].LockedBy = &d.DispatcherID
			claimed[i].Attempts = claimed[i].Attempts + 1
			if err := tx.Model(&EmailMessage{}).Where("id = ?", claimed[i].ID).Updates(map[string]interface{}{
				"status":     StatusProcessing,
				"locked_at":  claimed[i].LockedAt,
				"locked_by":  claimed[i].LockedBy,
				"attempts":   gorm.Expr("attempts + 1"),
				"last_error": nil,
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		d.Logger.WithField("dispatcher_id", d.DispatcherID).Error(err)
		return
	}

	for i := range claimed {
		if claimed[i].Status != StatusProcessing {
			continue
		}
		d.publish(ctx, &claimed[i])
	}
}

func (d *Dispatcher) publish(ctx context.Context, message *EmailMessage) {

	payload, err := json.Marshal(EmailPayload{
		ID:        message.ID,
		Subject:   message.Subject,
		PlainBody: message.PlainBody,
		HtmlBody:  message.HtmlBody,
		From:      message.FromAddress,
		To:        message.ToAddresses,
	})
	if err == nil {
		err = d.Producer.Produce(payload, d.Topic)
	}

	if err != nil {
		msg := err.Error()
		backoff := d.InitialBackoff * time.Duration(1<<min(message.Attempts, 6))
		nextAttempt := time.Now().UTC().Add(backoff)

		d.Logger.WithFields(logrus.Fields{
			"message_id": message.ID,
			"attempts":   message.Attempts,
		}).Error(err)

		updateErr := d.DB.WithContext(ctx).Model(&EmailMessage{}).Where("id = ?", message.ID).Updates(map[string]interface{}{
			"status":          StatusFailed,
			"last_error":      &msg,
			"next_attempt_at": &nextAttempt,
			"locked_at":       nil,
			"locked_by":       nil,
		}).Error
		if updateErr != nil {
			d.Logger.WithField("message_id", message.ID).Error(updateErr)
		}
		return
	}

	updateErr := d.DB.WithContext(ctx).Model(&EmailMessage{}).Where("id = ?", message.ID).Updates(map[string]interface{}{
		"status":          StatusSent,
		"next_attempt_at": nil,
		"locked_at":       nil,
		"locked_by":       nil,
	}).Error
	if updateErr != nil {
		d.Logger.WithField("message_id", message.ID).Error(updateErr)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
