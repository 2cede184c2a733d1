package main

import (
	"context"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/event"
	"cargodelivery.ru/cargo/internal/http"
	"cargodelivery.ru/cargo/internal/http/controller"
	"cargodelivery.ru/cargo/internal/notify"
	"cargodelivery.ru/cargo/internal/outbox"
	"cargodelivery.ru/cargo/internal/queue/kafka"
	"cargodelivery.ru/cargo/internal/repository/repositories"
	"cargodelivery.ru/cargo/internal/usecase/application"
	"cargodelivery.ru/cargo/internal/usecase/order"
	"cargodelivery.ru/cargo/internal/usecase/sending"
	"cargodelivery.ru/cargo/pkg/db/postgresql"
)

func main() {

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	dbConf := config.DatabaseConf()
	db := postgresql.GetInstance(
		dbConf.Pgsql.Host,
		dbConf.Pgsql.Username,
		dbConf.Pgsql.Password,
		dbConf.Pgsql.Database,
		dbConf.Pgsql.Port,
	)

	appConf := config.NewAppConfig()
	notifyConf := config.NotifyConf()
	kafkaConf := config.KafkaConf()

	db.AutoMigrate(
		&repositories.User{},
		&repositories.Company{},
		&repositories.WorkerProfile{},
		&repositories.Country{},
		&repositories.City{},
		&repositories.Warehouse{},
		&repositories.Transport{},
		&repositories.Order{},
		&repositories.Sending{},
		&repositories.TransitPoint{},
		&repositories.Application{},
		&outbox.EmailMessage{},
	)

	userRepo := repositories.NewUserRepo(db, trmgorm.DefaultCtxGetter)
	companyRepo := repositories.NewCompanyRepo(db, trmgorm.DefaultCtxGetter)
	geoRepo := repositories.NewGeoRepo(db, trmgorm.DefaultCtxGetter)
	warehouseRepo := repositories.NewWarehouseRepo(db, trmgorm.DefaultCtxGetter)
	transportRepo := repositories.NewTransportRepo(db, trmgorm.DefaultCtxGetter)
	orderRepo := repositories.NewOrderRepo(db, trmgorm.DefaultCtxGetter)
	sendingRepo := repositories.NewSendingRepo(db, trmgorm.DefaultCtxGetter)
	applicationRepo := repositories.NewApplicationRepo(db, trmgorm.DefaultCtxGetter)

	m, err := manager.New(trmgorm.NewDefaultFactory(db))
	if err != nil {
		panic(err)
	}

	mailbox := outbox.New(db)

	bus := event.NewBus(log)
	bus.SubscribeSendingCreated(notify.NewSendingMatchNotifier(
		notifyConf, log, mailbox, sendingRepo, warehouseRepo, orderRepo, applicationRepo, userRepo,
	))
	bus.SubscribeApplicationSaved(notify.NewApplicationStatusNotifier(
		notifyConf, log, mailbox, applicationRepo, orderRepo, sendingRepo, userRepo,
	))
	bus.SubscribeApplicationSaved(notify.NewApplicationCreatedNotifier(
		notifyConf, log, mailbox, applicationRepo, orderRepo, sendingRepo, companyRepo,
	))

	producer, err := kafka.NewProducer(kafkaConf.BootstrapServers)
	if err != nil {
		panic(err)
	}
	defer producer.Close()

	dispatcher := outbox.NewDispatcher(db, producer, log, kafkaConf.EmailTopic)

	orderUseCase := order.New(m, orderRepo, userRepo, geoRepo)
	sendingUseCase := sending.New(m, bus, sendingRepo, warehouseRepo, transportRepo)
	applicationUseCase := application.New(m, bus, applicationRepo, orderRepo, sendingRepo)

	cs := http.Controllers{
		OrderController:       controller.NewOrderController(orderUseCase),
		SendingController:     controller.NewSendingController(sendingUseCase),
		ApplicationController: controller.NewApplicationController(applicationUseCase),
	}
	r := http.NewRouter(cs)

	e := http.NewHttpServer(appConf)
	r.SetupRoutes(e)

	g, gCtx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		dispatcher.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		return e.Start(":8080")
	})

	log.Fatal(g.Wait())
}
