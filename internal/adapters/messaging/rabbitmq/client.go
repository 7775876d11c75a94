package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/platform/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type Config struct {
	URL            string
	SubmittedQueue string
	ReviewQueue    string
}

// Client publica solicitudes nuevas y consume decisiones de revisión.
// Un solo canal: el server solo publica y el worker solo consume.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	log     logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durables, idempotente si ya existen
	for _, q := range []string{cfg.SubmittedQueue, cfg.ReviewQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	log.Info("rabbitmq connected", map[string]any{
		"submitted_queue": cfg.SubmittedQueue,
		"review_queue":    cfg.ReviewQueue,
	})
	return &Client{conn: conn, channel: ch, cfg: cfg, log: log}, nil
}

func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		errs = append(errs, c.channel.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}

// PublishSubmitted implementa applications.Publisher.
func (c *Client) PublishSubmitted(ctx context.Context, ev applications.SubmittedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(pubCtx, "", c.cfg.SubmittedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         "application.submitted",
		Timestamp:    ev.SubmittedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

type ReviewHandler func(ctx context.Context, d applications.ReviewDecision) error

// ConsumeReviews bloquea hasta que ctx se cancela o el canal se cierra.
func (c *Client) ConsumeReviews(ctx context.Context, handler ReviewHandler) error {
	msgs, err := c.channel.Consume(c.cfg.ReviewQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}
	c.log.Info("consuming review decisions", map[string]any{"queue": c.cfg.ReviewQueue})

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			handleDelivery(ctx, msg, handler, c.log)
		}
	}
}

// handleDelivery: mensaje mal formado => nack sin requeue; error del handler => requeue.
func handleDelivery(ctx context.Context, msg amqp.Delivery, handler ReviewHandler, log logger.Logger) {
	d, err := decodeDecision(msg.Body)
	if err != nil {
		log.Warn("dropping malformed review decision", map[string]any{"error": err, "body": string(msg.Body)})
		if err := msg.Nack(false, false); err != nil {
			log.Error("nack failed", map[string]any{"error": err})
		}
		return
	}

	if err := handler(ctx, d); err != nil {
		log.Error("review decision failed, requeueing", map[string]any{"error": err, "application_id": d.ApplicationID})
		if err := msg.Nack(false, true); err != nil {
			log.Error("nack failed", map[string]any{"error": err})
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Error("ack failed", map[string]any{"error": err})
	}
}

func decodeDecision(body []byte) (applications.ReviewDecision, error) {
	var d applications.ReviewDecision
	if err := json.Unmarshal(body, &d); err != nil {
		return applications.ReviewDecision{}, fmt.Errorf("invalid json: %w", err)
	}
	if d.ApplicationID <= 0 {
		return applications.ReviewDecision{}, errors.New("applicationId must be positive")
	}
	if strings.TrimSpace(d.Status) == "" {
		return applications.ReviewDecision{}, errors.New("status is required")
	}
	return d, nil
}
