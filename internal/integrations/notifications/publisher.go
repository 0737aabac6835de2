package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Publisher публикует события бронирований в RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex // канал AMQP не рассчитан на конкурентную публикацию
	ch       Channel
	exchange string
	timeout  time.Duration
	now      func() time.Time
	log      Logger
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisher(ch, exchange, timeout, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	log.Info("Notifications: connected, exchange=%s", exchange)
	return p, nil
}

// NewPublisher создает издателя поверх открытого канала
func NewPublisher(ch Channel, exchange string, timeout time.Duration, log Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &Publisher{
		ch:       ch,
		exchange: exchange,
		timeout:  timeout,
		now:      time.Now,
		log:      log,
	}, nil
}

// PublishBookingConfirmed публикует событие о созданном бронировании
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingConfirmed, booking)
}

// PublishBookingRejected публикует событие об отклоненном бронировании
func (p *Publisher) PublishBookingRejected(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingRejected, booking)
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	body, err := json.Marshal(NewBookingEvent(eventType, booking, p.now()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    booking.ID.String(),
		Timestamp:    p.now(),
		Type:         eventType,
		Body:         body,
	})
	if err != nil {
		p.log.Error("Publish: failed to publish %s for booking id=%s: %v", eventType, booking.ID, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}

	p.log.Info("Publish: %s published for booking id=%s", eventType, booking.ID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
