package config

import "strconv"

// NotifyConfig carries what email rendering needs. It is passed into the
// notifier components at startup instead of being read from globals.
type NotifyConfig struct {
	SiteURL   string
	FromEmail string
}

func NotifyConf() NotifyConfig {
	return NotifyConfig{
		SiteURL:   envOr("SITE_URL", "http://localhost:8080"),
		FromEmail: envOr("DEFAULT_FROM_EMAIL", "noreply@cargodelivery.ru"),
	}
}

type KafkaConfig struct {
	BootstrapServers string
	EmailTopic       string
	ConsumerGroup    string
}

func KafkaConf() KafkaConfig {
	return KafkaConfig{
		BootstrapServers: envOr("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		EmailTopic:       envOr("KAFKA_EMAIL_TOPIC", "notifications.email"),
		ConsumerGroup:    envOr("KAFKA_CONSUMER_GROUP", "mailer"),
	}
}

type SmtpConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

func SmtpConf() SmtpConfig {
	port, err := strconv.Atoi(envOr("SMTP_PORT", "25"))
	if err != nil {
		port = 25
	}

	return SmtpConfig{
		Host:     envOr("SMTP_HOST", "localhost"),
		Port:     port,
		Username: envOr("SMTP_USER", ""),
		Password: envOr("SMTP_PASSWORD", ""),
	}
}
