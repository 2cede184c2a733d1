package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"cargodelivery.ru/cargo"
	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/event"
)

// ApplicationCreatedNotifier broadcasts a new application to every worker
// of the company owning the referenced sending. Fires on creation only,
// regardless of the initial status. Duplicate worker addresses are kept.
type ApplicationCreatedNotifier struct {
	conf       config.NotifyConfig
	log        *logrus.Logger
	dispatcher Dispatcher

	applications ApplicationSource
	orders       OrderSource
	sendings     SendingSource
	workers      WorkerSource
}

func NewApplicationCreatedNotifier(
	conf config.NotifyConfig,
	log *logrus.Logger,
	dispatcher Dispatcher,
	applications ApplicationSource,
	orders OrderSource,
	sendings SendingSource,
	workers WorkerSource,
) *ApplicationCreatedNotifier {
	return &ApplicationCreatedNotifier{
		conf:         conf,
		log:          log,
		dispatcher:   dispatcher,
		applications: applications,
		orders:       orders,
		sendings:     sendings,
		workers:      workers,
	}
}

func (n *ApplicationCreatedNotifier) HandleApplicationSaved(ctx context.Context, e event.ApplicationSaved) error {
	const op = "notify.ApplicationCreatedNotifier.HandleApplicationSaved"

	if !e.Created {
		return nil
	}

	application, err := n.applications.FindById(ctx, e.ApplicationID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	order, err := n.orders.FindById(ctx, application.OrderID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	sending, err := n.sendings.FindById(ctx, application.SendingID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	emails, err := n.workers.WorkerEmailsByCompany(ctx, sending.CompanyID)
	if err != nil {
		return cargo.OpError(op, err)
	}

	htmlBody, err := RenderApplicationCreated(ApplicationCreatedContext{
		Application: application,
		Order:       order,
		Sending:     sending,
		Price:       application.Price(order, sending),
		SiteURL:     n.conf.SiteURL,
	})
	if err != nil {
		return cargo.OpError(op, err)
	}

	err = n.dispatcher.SendMany(ctx, SubjectApplicationCreated, StripTags(htmlBody), n.conf.FromEmail, emails, htmlBody)
	if err != nil {
		n.log.WithFields(logrus.Fields{
			"application_id": application.ID,
			"sending_id":     sending.ID,
		}).Error(err)
	}

	return nil
}
