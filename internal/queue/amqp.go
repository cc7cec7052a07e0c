package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPPublisher pushes jobs onto a durable RabbitMQ queue named after the
// topic. The consuming side is cmd/worker. Subscribe is intentionally
// unsupported: the server process only ever publishes.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.SugaredLogger
}

var _ Queue = (*AMQPPublisher)(nil)

func DialAMQP(url string, log *zap.SugaredLogger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, log: log}, nil
}

func (p *AMQPPublisher) Publish(topic string, payload any) error {
	q, err := p.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("amqp publisher does not consume, run cmd/worker instead")
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
