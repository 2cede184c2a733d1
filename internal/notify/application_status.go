package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/entity"
	"cargodelivery.ru/cargo/internal/event"
)

// ApplicationStatusNotifier tells the order owner whenever an application
// is saved with status CONF or DECL. It fires on every such save, not
// only on a transition: an application created directly as CONF still
// produces a notification. WAIT is silent.
type ApplicationStatusNotifier struct {
	conf       config.NotifyConfig
	log        *logrus.Logger
	dispatcher Dispatcher

	applications ApplicationSource
	orders       OrderSource
	sendings     SendingSource
	users        UserSource
}

func NewApplicationStatusNotifier(
	conf config.NotifyConfig,
	log *logrus.Logger,
	dispatcher Dispatcher,
	applications ApplicationSource,
	orders OrderSource,
	sendings SendingSource,
	users UserSource,
) *ApplicationStatusNotifier {
	return &ApplicationStatusNotifier{
		conf:         conf,
		log:          log,
		dispatcher:   dispatcher,
		applications: applications,
		orders:       orders,
		sendings:     sendings,
		users:        users,
	}
}

func (n *ApplicationStatusNotifier) HandleApplicationSaved(ctx context.Context, e event.ApplicationSaved) error {
	const op = "notify.ApplicationStatusNotifier.HandleApplicationSaved"

	application, err := n.applications.FindById(ctx, e.ApplicationID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	if application.Status != entity.CONF && application.Status != entity.DECL {
		return nil
	}

	order, err := n.orders.FindById(ctx, application.OrderID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	sending, err := n.sendings.FindById(ctx, application.SendingID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	user, err := n.users.FindById(ctx, order.UserID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	htmlBody, err := RenderApplicationStatus(ApplicationStatusContext{
		Status:  application.Status.Label(),
		Order:   order,
		Sending: sending,
		Price:   application.Price(order, sending),
		SiteURL: n.conf.SiteURL,
	})
	if err != nil {
		return cargo.OpError(op, err)
	}

	err = n.dispatcher.Send(ctx, SubjectApplicationStatus, StripTags(htmlBody), n.conf.FromEmail, user.Email, htmlBody)
	if err != nil {
		n.log.WithFields(logrus.Fields{
			"application_id": application.ID,
			"order_id":       order.ID,
		}).Error(err)
	}

	return nil
}
