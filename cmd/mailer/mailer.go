package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"cargodelivery.ru/cargo/config"
	"cargodelivery.ru/cargo/internal/queue/kafka"
	"cargodelivery.ru/cargo/pkg/mail"
)

// The mailer is a standalone worker: it reads rendered email payloads
// from the queue and delivers them over SMTP.
func main() {

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	kafkaConf := config.KafkaConf()
	smtpConf := config.SmtpConf()

	consumer, err := kafka.NewConsumer(
		kafkaConf.BootstrapServers,
		kafkaConf.ConsumerGroup,
		kafkaConf.EmailTopic,
		log,
	)
	if err != nil {
		log.Fatal(err)
	}

	sender := mail.NewSmtpSender(
		smtpConf.Host,
		smtpConf.Port,
		smtpConf.Username,
		smtpConf.Password,
	)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		consumer.Stop()
	}()

	log.Infof("mailer started, topic=%s group=%s", kafkaConf.EmailTopic, kafkaConf.ConsumerGroup)
	consumer.Start(sender)
}
