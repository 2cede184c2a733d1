package event

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// SendingCreated is emitted after a sending row is committed. Only
// creation triggers it; sending updates do not.
type SendingCreated struct {
	SendingID uint64
}

// ApplicationSaved is emitted after every committed application save.
// Created distinguishes the initial insert from a status update.
type ApplicationSaved struct {
	ApplicationID uint64
	Created       bool
}

type SendingCreatedHandler interface {
	HandleSendingCreated(ctx context.Context, e SendingCreated) error
}

type ApplicationSavedHandler interface {
	HandleApplicationSaved(ctx context.Context, e ApplicationSaved) error
}

// Bus fans events out to observers in separate goroutines. Delivery is
// fire-and-forget: handler errors are logged and never reach the
// publishing transaction.
type Bus struct {
	log *logrus.Logger
	wg  sync.WaitGroup

	sendingCreated   []SendingCreatedHandler
	applicationSaved []ApplicationSavedHandler
}

func NewBus(log *logrus.Logger) *Bus {
	return &Bus{
		log: log,
	}
}

func (b *Bus) SubscribeSendingCreated(h SendingCreatedHandler) {
	b.sendingCreated = append(b.sendingCreated, h)
}

func (b *Bus) SubscribeApplicationSaved(h ApplicationSavedHandler) {
	b.applicationSaved = append(b.applicationSaved, h)
}

func (b *Bus) PublishSendingCreated(e SendingCreated) {
	for _, h := range b.sendingCreated {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			// The publishing request may finish before the handler does,
			// so handlers never run on the request context.
			if err := h.HandleSendingCreated(context.Background(), e); err != nil {
				b.log.WithFields(logrus.Fields{
					"event":      "SendingCreated",
					"sending_id": e.SendingID,
				}).Error(err)
			}
		}()
	}
}

func (b *Bus) PublishApplicationSaved(e ApplicationSaved) {
	for _, h := range b.applicationSaved {
		h := h
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			if err := h.HandleApplicationSaved(context.Background(), e); err != nil {
				b.log.WithFields(logrus.Fields{
					"event":          "ApplicationSaved",
					"application_id": e.ApplicationID,
					"created":        e.Created,
				}).Error(err)
			}
		}()
	}
}

// Wait blocks until all in-flight handlers finish. Used on shutdown and
// in tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}
