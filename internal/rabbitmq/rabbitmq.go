package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const NOTIFICATIONS_QUEUE = "notifications"

var queues = []string{NOTIFICATIONS_QUEUE}

// Publisher is the write half of MQConn; services depend on it so tests
// can substitute a fake.
type Publisher interface {
	Publish(queue string, body []byte) error
}

// Consumer is the read half; worker loops take it so tests can feed
// deliveries directly.
type Consumer interface {
	Consume(queue string) (<-chan amqp.Delivery, error)
}

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	return &MQConn{conn: conn, ch: ch}, nil
}

func (m *MQConn) Publish(queue string, body []byte) error {
	return m.ch.Publish("", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	return m.ch.Consume(queue, "", false, false, false, false, nil)
}

func (m *MQConn) Close() error {
	if err := m.ch.Close(); err != nil {
		return err
	}
	return m.conn.Close()
}
