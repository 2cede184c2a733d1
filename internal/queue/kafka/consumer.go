package kafka

import (
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"

	"cargodelivery.ru/cargo/internal/outbox"
)

const (
	sessionTimeout = 7000
	noTimeout      = -1
)

// Sender performs the actual email delivery for one payload. Duplicate
// deliveries are possible; sending the same email twice is the only side
// effect of a replay.
type Sender interface {
	SendEmail(payload outbox.EmailPayload) error
}

type Consumer struct {
	consumer *kafka.Consumer
	log      *logrus.Logger
	stop     bool
}

func NewConsumer(bootstrapServers, group, topic string, log *logrus.Logger) (*Consumer, error) {
	con, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":        bootstrapServers,
		"group.id":                 group,
		"auto.offset.reset":        "earliest",
		"session.timeout.ms":       sessionTimeout,
		"enable.auto.offset.store": true,
		"enable.auto.commit":       true,
		"auto.commit.interval.ms":  5000,
	})
	if err != nil {
		return nil, err
	}

	if err = con.Subscribe(topic, nil); err != nil {
		return nil, err
	}

	return &Consumer{consumer: con, log: log, stop: false}, nil
}

func (c *Consumer) Start(sender Sender) {
	for {
		if c.stop {
			break
		}

		kafkaMsg, err := c.consumer.ReadMessage(noTimeout)
		if err != nil {
			c.log.Errorf("Consumer error: %v (%v)", err, kafkaMsg)
			continue
		}

		var payload outbox.EmailPayload
		err = json.Unmarshal(kafkaMsg.Value, &payload)
		if err != nil {
			c.log.Errorf("Failed to unmarshal message: %s", err)
			continue
		}

		err = sender.SendEmail(payload)
		if err != nil {
			c.log.WithField("message_id", payload.ID).Errorf("Failed to send email: %s", err)
			continue
		}

		c.log.WithField("message_id", payload.ID).Infof("Email sent to %d recipient(s)", len(payload.To))

		if _, err = c.consumer.StoreMessage(kafkaMsg); err != nil {
			c.log.Error(err)
			continue
		}
	}
}

func (c *Consumer) Stop() {
	c.stop = true
	c.consumer.Close()
}
