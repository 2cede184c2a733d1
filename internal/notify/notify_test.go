package notify

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/event"
)

// In-memory stand-ins for the pgsql repositories.

type fakeStore struct {
	sendings     map[uint64]*entity.Sending
	warehouses   map[uint64]*entity.Warehouse
	orders       map[uint64]*entity.Order
	applications map[uint64]*entity.Application
	users        map[uint64]*entity.User
	workerEmails map[uint64][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sendings:     map[uint64]*entity.Sending{},
		warehouses:   map[uint64]*entity.Warehouse{},
		orders:       map[uint64]*entity.Order{},
		applications: map[uint64]*entity.Application{},
		users:        map[uint64]*entity.User{},
		workerEmails: map[uint64][]string{},
	}
}

func (f *fakeStore) FindSendingById(_ context.Context, id uint64) (*entity.Sending, error) {
	s, ok := f.sendings[id]
	if !ok {
		return nil, &cargo.Error{Code: cargo.ENOTFOUND, Message: "sending not found"}
	}
	return s, nil
}

type sendingSource struct{ *fakeStore }

func (f sendingSource) FindById(ctx context.Context, id uint64) (*entity.Sending, error) {
	return f.FindSendingById(ctx, id)
}

type warehouseSource struct{ *fakeStore }

func (f warehouseSource) FindById(_ context.Context, id uint64) (*entity.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, &cargo.Error{Code: cargo.ENOTFOUND, Message: "warehouse not found"}
	}
	return w, nil
}

type orderSource struct{ *fakeStore }

func (f orderSource) FindById(_ context.Context, id uint64) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, &cargo.Error{Code: cargo.ENOTFOUND, Message: "order not found"}
	}
	return o, nil
}

func (f orderSource) FindByRoute(_ context.Context, departureCityID, arrivalCityID uint64, departureDate time.Time) (*[]entity.Order, error) {
	res := []entity.Order{}
	for _, o := range f.orders {
		if o.DepartureCityID == departureCityID &&
			o.ArrivalCityID == arrivalCityID &&
			o.DepartureDate.Equal(departureDate) {
			res = append(res, *o)
		}
	}
	return &res, nil
}

type applicationSource struct{ *fakeStore }

func (f applicationSource) FindById(_ context.Context, id uint64) (*entity.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, &cargo.Error{Code: cargo.ENOTFOUND, Message: "application not found"}
	}
	return a, nil
}

func (f applicationSource) FindByOrder(_ context.Context, orderID uint64) (*entity.Application, error) {
	for _, a := range f.applications {
		if a.OrderID == orderID {
			return a, nil
		}
	}
	return nil, nil
}

type userSource struct{ *fakeStore }

func (f userSource) FindById(_ context.Context, id uint64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, &cargo.Error{Code: cargo.ENOTFOUND, Message: "user not found"}
	}
	return u, nil
}

type workerSource struct{ *fakeStore }

func (f workerSource) WorkerEmailsByCompany(_ context.Context, companyID uint64) ([]string, error) {
	return f.workerEmails[companyID], nil
}

// recordingDispatcher captures what would be enqueued into the outbox.

type sentMail struct {
	Subject  string
	Plain    string
	Html     string
	From     string
	To       []string
	Together bool
}

type recordingDispatcher struct {
	sent []sentMail
}

func (d *recordingDispatcher) Send(_ context.Context, subject, plainBody, from, to, htmlBody string) error {
	d.sent = append(d.sent, sentMail{Subject: subject, Plain: plainBody, Html: htmlBody, From: from, To: []string{to}})
	return nil
}

func (d *recordingDispatcher) SendMany(_ context.Context, subject, plainBody, from string, to []string, htmlBody string) error {
	d.sent = append(d.sent, sentMail{Subject: subject, Plain: plainBody, Html: htmlBody, From: from, To: to, Together: true})
	return nil
}

// failingDispatcher refuses every enqueue but still records the attempts.
type failingDispatcher struct {
	recordingDispatcher
}

func (d *failingDispatcher) Send(ctx context.Context, subject, plainBody, from, to, htmlBody string) error {
	d.recordingDispatcher.Send(ctx, subject, plainBody, from, to, htmlBody)
	return errors.New("outbox unavailable")
}

func (d *failingDispatcher) SendMany(ctx context.Context, subject, plainBody, from string, to []string, htmlBody string) error {
	d.recordingDispatcher.SendMany(ctx, subject, plainBody, from, to, htmlBody)
	return errors.New("outbox unavailable")
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var testConf = config.NotifyConfig{
	SiteURL:   "http://cargo.test",
	FromEmail: "noreply@cargo.test",
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func seedRouteFixture() *fakeStore {
	f := newFakeStore()

	f.users[1] = &entity.User{ID: 1, Email: "first@cargo.test"}
	f.users[2] = &entity.User{ID: 2, Email: "second@cargo.test"}
	f.users[3] = &entity.User{ID: 3, Email: "third@cargo.test"}
	f.users[4] = &entity.User{ID: 4, Email: "fourth@cargo.test"}

	f.warehouses[10] = &entity.Warehouse{ID: 10, CompanyID: 1, CityID: 100}
	f.warehouses[11] = &entity.Warehouse{ID: 11, CompanyID: 1, CityID: 200}

	f.sendings[5] = &entity.Sending{
		ID:                   5,
		CompanyID:            1,
		DepartureWarehouseID: 10,
		DepartureDate:        date(2023, 6, 1),
		ArrivalWarehouseID:   11,
		ArrivalDate:          date(2023, 6, 4),
		TotalVolume:          decimal.RequireFromString("50"),
		PriceForM3:           decimal.RequireFromString("500"),
	}

	mkOrder := func(id, userID uint64, dep time.Time) *entity.Order {
		return &entity.Order{
			ID:              id,
			UserID:          userID,
			DepartureCityID: 100,
			ArrivalCityID:   200,
			DepartureDate:   dep,
			CargoLen:        decimal.RequireFromString("100"),
			CargoWidth:      decimal.RequireFromString("50"),
			CargoDepth:      decimal.RequireFromString("20"),
		}
	}

	f.orders[1] = mkOrder(1, 1, date(2023, 6, 1)) // no application
	f.orders[2] = mkOrder(2, 2, date(2023, 6, 1)) // WAIT application
	f.orders[3] = mkOrder(3, 3, date(2023, 6, 1)) // CONF application
	f.orders[4] = mkOrder(4, 4, date(2023, 6, 2)) // different date

	f.applications[20] = &entity.Application{ID: 20, OrderID: 2, SendingID: 99, Status: entity.WAIT}
	f.applications[21] = &entity.Application{ID: 21, OrderID: 3, SendingID: 99, Status: entity.CONF}

	return f
}

func newMatchNotifier(f *fakeStore, d Dispatcher) *SendingMatchNotifier {
	return NewSendingMatchNotifier(
		testConf, testLogger(), d,
		sendingSource{f}, warehouseSource{f}, orderSource{f}, applicationSource{f}, userSource{f},
	)
}

func TestSendingMatchNotifier(t *testing.T) {

	t.Run("notifies unconfirmed orders on matching route and date", func(t *testing.T) {
		f := seedRouteFixture()
		d := &recordingDispatcher{}
		n := newMatchNotifier(f, d)

		err := n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 5})
		require.NoError(t, err)

		recipients := []string{}
		for _, m := range d.sent {
			assert.Equal(t, SubjectNewSending, m.Subject)
			assert.Equal(t, "noreply@cargo.test", m.From)
			recipients = append(recipients, m.To...)
		}

		// No application and WAIT application get the email; the CONF one
		// and the order on another date do not.
		assert.ElementsMatch(t, []string{"first@cargo.test", "second@cargo.test"}, recipients)
	})

	t.Run("no matches means no mail", func(t *testing.T) {
		f := seedRouteFixture()
		f.sendings[6] = &entity.Sending{
			ID:                   6,
			CompanyID:            1,
			DepartureWarehouseID: 11, // reversed route
			DepartureDate:        date(2023, 6, 1),
			ArrivalWarehouseID:   10,
			ArrivalDate:          date(2023, 6, 4),
			TotalVolume:          decimal.RequireFromString("50"),
			PriceForM3:           decimal.RequireFromString("500"),
		}
		d := &recordingDispatcher{}
		n := newMatchNotifier(f, d)

		err := n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 6})
		require.NoError(t, err)
		assert.Empty(t, d.sent)
	})

	t.Run("re-invocation re-evaluates instead of deduplicating", func(t *testing.T) {
		f := seedRouteFixture()
		d := &recordingDispatcher{}
		n := newMatchNotifier(f, d)

		require.NoError(t, n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 5}))
		first := len(d.sent)

		// Once the WAIT application turns CONF, a replay only reaches the
		// order without any application.
		f.applications[20].Status = entity.CONF
		require.NoError(t, n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 5}))

		assert.Equal(t, 2, first)
		assert.Equal(t, first+1, len(d.sent))
		assert.Equal(t, []string{"first@cargo.test"}, d.sent[len(d.sent)-1].To)
	})

	t.Run("dispatch failure skips nobody and is not an error", func(t *testing.T) {
		f := seedRouteFixture()
		d := &failingDispatcher{}
		n := newMatchNotifier(f, d)

		err := n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 5})
		require.NoError(t, err)

		// Both qualifying orders were still attempted.
		recipients := []string{}
		for _, m := range d.sent {
			recipients = append(recipients, m.To...)
		}
		assert.ElementsMatch(t, []string{"first@cargo.test", "second@cargo.test"}, recipients)
	})

	t.Run("unknown sending is an error", func(t *testing.T) {
		f := seedRouteFixture()
		d := &recordingDispatcher{}
		n := newMatchNotifier(f, d)

		err := n.HandleSendingCreated(context.Background(), event.SendingCreated{SendingID: 777})
		require.Error(t, err)
		assert.Equal(t, cargo.ENOTFOUND, cargo.ErrorCode(err))
	})
}

func newStatusNotifier(f *fakeStore, d Dispatcher) *ApplicationStatusNotifier {
	return NewApplicationStatusNotifier(
		testConf, testLogger(), d,
		applicationSource{f}, orderSource{f}, sendingSource{f}, userSource{f},
	)
}

func TestApplicationStatusNotifier(t *testing.T) {

	seed := func(status entity.ApplicationStatus) *fakeStore {
		f := seedRouteFixture()
		f.applications[30] = &entity.Application{ID: 30, OrderID: 1, SendingID: 5, Status: status}
		return f
	}

	t.Run("CONF notifies the order owner", func(t *testing.T) {
		f := seed(entity.CONF)
		d := &recordingDispatcher{}
		n := newStatusNotifier(f, d)

		err := n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 30})
		require.NoError(t, err)

		require.Len(t, d.sent, 1)
		assert.Equal(t, SubjectApplicationStatus, d.sent[0].Subject)
		assert.Equal(t, []string{"first@cargo.test"}, d.sent[0].To)
		assert.Contains(t, d.sent[0].Html, "Подтверждено")
		assert.Contains(t, d.sent[0].Plain, "Подтверждено")
		assert.NotContains(t, d.sent[0].Plain, "<p>")
	})

	t.Run("DECL notifies with the declined label", func(t *testing.T) {
		f := seed(entity.DECL)
		d := &recordingDispatcher{}
		n := newStatusNotifier(f, d)

		require.NoError(t, n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 30}))
		require.Len(t, d.sent, 1)
		assert.Contains(t, d.sent[0].Html, "Отклонено")
	})

	t.Run("WAIT is silent", func(t *testing.T) {
		f := seed(entity.WAIT)
		d := &recordingDispatcher{}
		n := newStatusNotifier(f, d)

		require.NoError(t, n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 30}))
		assert.Empty(t, d.sent)
	})

	t.Run("fires on direct CONF create too", func(t *testing.T) {
		f := seed(entity.CONF)
		d := &recordingDispatcher{}
		n := newStatusNotifier(f, d)

		require.NoError(t, n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 30, Created: true}))
		require.Len(t, d.sent, 1)
	})
}

func newCreatedNotifier(f *fakeStore, d Dispatcher) *ApplicationCreatedNotifier {
	return NewApplicationCreatedNotifier(
		testConf, testLogger(), d,
		applicationSource{f}, orderSource{f}, sendingSource{f}, workerSource{f},
	)
}

func TestApplicationCreatedNotifier(t *testing.T) {

	seed := func() *fakeStore {
		f := seedRouteFixture()
		f.applications[40] = &entity.Application{ID: 40, OrderID: 1, SendingID: 5, Status: entity.WAIT, Info: "Хрупкий груз"}
		// Two workers share an email box; the broadcast keeps duplicates.
		f.workerEmails[1] = []string{"worker1@cargo.test", "worker2@cargo.test", "worker1@cargo.test"}
		return f
	}

	t.Run("broadcasts to company workers", func(t *testing.T) {
		f := seed()
		d := &recordingDispatcher{}
		n := newCreatedNotifier(f, d)

		err := n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 40, Created: true})
		require.NoError(t, err)

		require.Len(t, d.sent, 1)
		assert.Equal(t, SubjectApplicationCreated, d.sent[0].Subject)
		assert.True(t, d.sent[0].Together)
		assert.Equal(t, []string{"worker1@cargo.test", "worker2@cargo.test", "worker1@cargo.test"}, d.sent[0].To)
		assert.Contains(t, d.sent[0].Html, "Хрупкий груз")
	})

	t.Run("ignores plain status saves", func(t *testing.T) {
		f := seed()
		d := &recordingDispatcher{}
		n := newCreatedNotifier(f, d)

		require.NoError(t, n.HandleApplicationSaved(context.Background(), event.ApplicationSaved{ApplicationID: 40, Created: false}))
		assert.Empty(t, d.sent)
	})
}
