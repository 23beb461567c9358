package amqp

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

var _ importer.Notifier = (*Notifier)(nil)

// Eventos publicados en la cola.
const (
	eventCustomerInserted = "customer.inserted"
	eventCustomerUpdated  = "customer.updated"
)

// customerEvent cuerpo JSON de los eventos de cliente.
type customerEvent struct {
	Event        string    `json:"event"`
	CustomerID   int64     `json:"customer_id"`
	CustomerGUID string    `json:"customer_guid"`
	Email        string    `json:"email,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notifier publica los eventos de cliente insertado/actualizado en una cola
// AMQP durable. Es best-effort: una falla de publicación se registra en el
// log y no afecta el run de importación.
type Notifier struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *logger.Logger
}

// NewNotifier conecta al broker y declara la cola durable.
func NewNotifier(url, queue string, log *logger.Logger) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Notifier{conn: conn, ch: ch, queue: queue, log: log}, nil
}

// Close libera canal y conexión.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

func (n *Notifier) CustomerInserted(customer *entity.Customer) {
	n.publish(eventCustomerInserted, customer)
}

func (n *Notifier) CustomerUpdated(customer *entity.Customer) {
	n.publish(eventCustomerUpdated, customer)
}

func (n *Notifier) publish(event string, customer *entity.Customer) {
	body, err := json.Marshal(customerEvent{
		Event:        event,
		CustomerID:   customer.ID,
		CustomerGUID: customer.CustomerGUID,
		Email:        customer.Email,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		n.log.Error().Err(err).Str("evento", event).Msg("serializar evento")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = n.ch.PublishWithContext(ctx,
		"",      // exchange por defecto
		n.queue, // routing key = cola
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		n.log.Error().Err(err).Str("evento", event).Int64("customer_id", customer.ID).
			Msg("publicar evento; se continúa (best-effort)")
	}
}
