package auditqueue

import (
	"context"
	"fmt"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service publishes audit events to a durable queue so other systems can
// follow operator activity without reading the auditoria table.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// confirmBuffer leaves room for confirms that arrive after their publisher
// gave up, so the broker connection never blocks on delivering them.
const confirmBuffer = 16

func NewService(conn *amqp.Connection, log *zap.Logger) (contracts.AuditQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	// Rejected or expired events are routed to the dead-letter queue.
	queues := []struct {
		name string
		args amqp.Table
	}{
		{name: constvars.AuditQueueDeadLetterName},
		{name: constvars.AuditQueueName, args: amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": constvars.AuditQueueDeadLetterName,
		}},
	}
	for _, queue := range queues {
		_, err = ch.QueueDeclare(
			queue.name, // name
			true,       // durable
			false,      // autoDelete
			false,      // exclusive
			false,      // noWait
			queue.args, // args
		)
		if err != nil {
			return nil, err
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer)),
	}, nil
}

// Publish sends the event persistently and waits for the broker confirm.
func (s *Service) Publish(ctx context.Context, event *models.AuditEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("auditQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAuditActionKey, event.Action),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	ctx, cancel := context.WithTimeout(ctx, constvars.AuditPublishTimeoutInSecond*time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.EventID,
		Timestamp:    event.CreatedAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	tag := s.ch.GetNextPublishSeqNo()
	if err := s.ch.PublishWithContext(ctx, "", constvars.AuditQueueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, constvars.AuditQueueName)
	}

	if err := awaitConfirm(ctx, s.confirms, tag); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, constvars.AuditQueueName)
	}

	s.log.Info("auditQueue.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, constvars.AuditQueueName),
	)
	return nil
}

// awaitConfirm waits for the confirm carrying tag. Confirms for earlier tags
// belong to publishes that already timed out and are dropped.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case confirmed, ok := <-confirms:
			if !ok {
				return fmt.Errorf("channel closed before confirm %d", tag)
			}
			if confirmed.DeliveryTag < tag {
				continue
			}
			if confirmed.DeliveryTag > tag || !confirmed.Ack {
				return fmt.Errorf("message %d not confirmed", tag)
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
