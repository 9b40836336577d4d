//go:build integration

package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
)

type AMQPIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
}

func (s *AMQPIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	s.amqpURL, err = container.AmqpURL(s.ctx)
	s.Require().NoError(err)
}

func (s *AMQPIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestAMQPIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AMQPIntegrationSuite))
}

func (s *AMQPIntegrationSuite) TestPublishesToTopicExchange() {
	cfg := config.AMQPConfig{URL: s.amqpURL, Exchange: "portal", RoutingKey: "events"}
	publisher, err := NewAMQP(cfg, dbtest.Logger())
	s.Require().NoError(err)
	defer publisher.Close()

	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	s.Require().NoError(err)
	s.Require().NoError(ch.QueueBind(q.Name, "events.#", cfg.Exchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	s.Require().NoError(err)

	s.Require().NoError(publisher.Notify(s.ctx, Message{Event: "feature_submitted", Subject: "New feature"}))

	select {
	case d := <-deliveries:
		s.Equal("events.feature_submitted", d.RoutingKey)
		var decoded map[string]any
		s.Require().NoError(json.Unmarshal(d.Body, &decoded))
		s.Equal("New feature", decoded["subject"])
	case <-time.After(10 * time.Second):
		s.Fail("timed out waiting for delivery")
	}
}
