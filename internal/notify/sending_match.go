package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/event"
)

// SendingMatchNotifier tells customers with pending orders about a newly
// created sending on the same route and date. It re-evaluates application
// state on every invocation; no "already notified" flag exists anywhere.
type SendingMatchNotifier struct {
	conf       config.NotifyConfig
	log        *logrus.Logger
	dispatcher Dispatcher

	sendings     SendingSource
	warehouses   WarehouseSource
	orders       OrderSource
	applications ApplicationSource
	users        UserSource
}

func NewSendingMatchNotifier(
	conf config.NotifyConfig,
	log *logrus.Logger,
	dispatcher Dispatcher,
	sendings SendingSource,
	warehouses WarehouseSource,
	orders OrderSource,
	applications ApplicationSource,
	users UserSource,
) *SendingMatchNotifier {
	return &SendingMatchNotifier{
		conf:         conf,
		log:          log,
		dispatcher:   dispatcher,
		sendings:     sendings,
		warehouses:   warehouses,
		orders:       orders,
		applications: applications,
		users:        users,
	}
}

func (n *SendingMatchNotifier) HandleSendingCreated(ctx context.Context, e event.SendingCreated) error {
	const op = "notify.SendingMatchNotifier.HandleSendingCreated"

	sending, err := n.sendings.FindById(ctx, e.SendingID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	departureWarehouse, err := n.warehouses.FindById(ctx, sending.DepartureWarehouseID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	arrivalWarehouse, err := n.warehouses.FindById(ctx, sending.ArrivalWarehouseID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	orders, err := n.orders.FindByRoute(ctx, departureWarehouse.CityID, arrivalWarehouse.CityID, sending.DepartureDate)
	if err != nil {
		return cargo.OpError(op, err)
	}

	for i := range *orders {
		order := &(*orders)[i]

		application, err := n.applications.FindByOrder(ctx, order.ID)
		if err != nil {
			return cargo.OpError(op, err)
		}

		// No application yet, or an unconfirmed one, means the customer
		// is still looking for a sending.
		needSend := application == nil || application.Status != entity.CONF
		if !needSend {
			continue
		}

		user, err := n.users.FindById(ctx, order.UserID)
		if err != nil {
			return cargo.OpError(op, err)
		}

		htmlBody, err := RenderNewSending(NewSendingContext{
			Order:   order,
			Sending: sending,
			SiteURL: n.conf.SiteURL,
		})
		if err != nil {
			return cargo.OpError(op, err)
		}

		err = n.dispatcher.Send(ctx, SubjectNewSending, StripTags(htmlBody), n.conf.FromEmail, user.Email, htmlBody)
		if err != nil {
			// Best-effort: a failed dispatch never blocks the rest of
			// the matched orders.
			n.log.WithFields(logrus.Fields{
				"sending_id": sending.ID,
				"order_id":   order.ID,
			}).Error(err)
		}
	}

	return nil
}
