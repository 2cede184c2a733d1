package event

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	mu       sync.Mutex
	sendings []SendingCreated
	saves    []ApplicationSaved
	err      error
}

func (h *recordingHandler) HandleSendingCreated(_ context.Context, e SendingCreated) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendings = append(h.sendings, e)
	return h.err
}

func (h *recordingHandler) HandleApplicationSaved(_ context.Context, e ApplicationSaved) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves = append(h.saves, e)
	return h.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestBusFansOutToAllSubscribers(t *testing.T) {

	bus := NewBus(testLogger())
	first := &recordingHandler{}
	second := &recordingHandler{}

	bus.SubscribeSendingCreated(first)
	bus.SubscribeSendingCreated(second)

	bus.PublishSendingCreated(SendingCreated{SendingID: 7})
	bus.Wait()

	assert.Equal(t, []SendingCreated{{SendingID: 7}}, first.sendings)
	assert.Equal(t, []SendingCreated{{SendingID: 7}}, second.sendings)
}

func TestBusDeliversApplicationSaved(t *testing.T) {

	bus := NewBus(testLogger())
	h := &recordingHandler{}
	bus.SubscribeApplicationSaved(h)

	bus.PublishApplicationSaved(ApplicationSaved{ApplicationID: 3, Created: true})
	bus.PublishApplicationSaved(ApplicationSaved{ApplicationID: 3, Created: false})
	bus.Wait()

	assert.ElementsMatch(t, []ApplicationSaved{
		{ApplicationID: 3, Created: true},
		{ApplicationID: 3, Created: false},
	}, h.saves)
}

func TestBusSwallowsHandlerErrors(t *testing.T) {

	bus := NewBus(testLogger())
	failing := &recordingHandler{err: errors.New("boom")}
	ok := &recordingHandler{}

	bus.SubscribeApplicationSaved(failing)
	bus.SubscribeApplicationSaved(ok)

	bus.PublishApplicationSaved(ApplicationSaved{ApplicationID: 1})
	bus.Wait()

	assert.Len(t, failing.saves, 1)
	assert.Len(t, ok.saves, 1)
}

func TestBusWithoutSubscribersIsNoop(t *testing.T) {

	bus := NewBus(testLogger())
	bus.PublishSendingCreated(SendingCreated{SendingID: 1})
	bus.Wait()
}
