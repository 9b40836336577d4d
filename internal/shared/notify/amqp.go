package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes portal events to a topic exchange. The routing key is the
// configured prefix followed by the event name.
type AMQP struct {
	conn       *amqp.Connection
	channel    channel
	exchange   string
	routingKey string
	logger     *slog.Logger
	now        func() time.Time
}

type event struct {
	Event     string    `json:"event"`
	Subject   string    `json:"subject"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAMQP(cfg config.AMQPConfig, logger *slog.Logger) (*AMQP, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, oops.With("context", "failed to connect to amqp broker").Wrap(err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, oops.With("context", "failed to open amqp channel").Wrap(err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, oops.With("exchange", cfg.Exchange, "context", "failed to declare exchange").Wrap(err)
	}

	logger.Info("Connected to amqp broker", "exchange", cfg.Exchange, "routing_key", cfg.RoutingKey)

	return &AMQP{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "amqp"),
		now:        time.Now,
	}, nil
}

func (a *AMQP) Name() string {
	return "amqp"
}

func (a *AMQP) Notify(ctx context.Context, msg Message) error {
	body, err := json.Marshal(event{
		Event:     msg.Event,
		Subject:   msg.Subject,
		Payload:   msg.Payload,
		Timestamp: a.now().UTC(),
	})
	if err != nil {
		return oops.With("event", msg.Event, "context", "failed to marshal event").Wrap(err)
	}

	key := a.routingKey + "." + msg.Event
	err = a.channel.PublishWithContext(ctx, a.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    a.now(),
	})
	if err != nil {
		return oops.With("routing_key", key, "context", "failed to publish event").Wrap(err)
	}

	a.logger.Debug("Published event", "routing_key", key)
	return nil
}

func (a *AMQP) Close() error {
	if a.channel != nil {
		a.channel.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// Shutdown closes the connection when the container stops.
func (a *AMQP) Shutdown() error {
	return a.Close()
}
