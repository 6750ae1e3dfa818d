// Package events publishes e-portfolio domain events after a workflow commits.
// Delivery is best effort: failures are logged and counted, never returned.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/batoulgheleb/crisiszone/internal/platform/kafka/producer"
	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// Event types.
const (
	TypeRequestSubmitted     = "request.submitted"
	TypeVerificationRecorded = "verification.recorded"
	TypeRequestExpired       = "request.expired"
	TypeRequestCancelled     = "request.cancelled"
)

// DefaultTopic receives every e-portfolio event.
const DefaultTopic = "eportfolio.events"

const defaultPublishTimeout = 5 * time.Second

// Envelope is the JSON value of every record. The record key is the doctor id,
// so a doctor's events stay ordered within a partition.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	DoctorID   string    `json:"doctorId"`
	RequestID  string    `json:"requestId,omitempty"`
	Data       any       `json:"data"`
}

// Producer is the broker write side.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

type Option func(*Publisher)

// Publisher maps domain records to envelopes on a single topic.
type Publisher struct {
	producer Producer
	topic    string
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
}

func NewPublisher(p Producer, opts ...Option) *Publisher {
	pub := &Publisher{
		producer: p,
		topic:    DefaultTopic,
		timeout:  defaultPublishTimeout,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(pub)
	}
	return pub
}

func WithTopic(topic string) Option {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(p *Publisher) {
		if t != nil {
			p.tracer = t
		}
	}
}

func (p *Publisher) RequestSubmitted(ctx context.Context, r *models.Request) {
	p.publish(ctx, TypeRequestSubmitted, string(r.DoctorID), string(r.ID), r)
}

func (p *Publisher) VerificationRecorded(ctx context.Context, v *models.Verification) {
	p.publish(ctx, TypeVerificationRecorded, string(v.DoctorID), string(v.RequestID), v)
}

func (p *Publisher) RequestExpired(ctx context.Context, r *models.Request) {
	p.publish(ctx, TypeRequestExpired, string(r.DoctorID), string(r.ID), r)
}

func (p *Publisher) RequestCancelled(ctx context.Context, r *models.Request) {
	p.publish(ctx, TypeRequestCancelled, string(r.DoctorID), string(r.ID), r)
}

func (p *Publisher) publish(ctx context.Context, eventType, doctorID, requestID string, data any) {
	ctx, span := p.tracer.Start(ctx, tracer.SpanPublishEvent,
		tracer.String(tracer.AttrEventType, eventType),
		tracer.String(tracer.AttrDoctorID, doctorID),
	)
	err := p.send(ctx, eventType, doctorID, requestID, data)
	span.End(err)

	outcome := "success"
	if err != nil {
		outcome = "error"
		p.logger.ErrorContext(ctx, "event_publish_failed",
			"event_type", eventType,
			"doctor_id", doctorID,
			"error", err,
		)
	}
	if p.metrics != nil {
		p.metrics.IncrementEventsPublished(eventType, outcome)
	}
}

func (p *Publisher) send(ctx context.Context, eventType, doctorID, requestID string, data any) error {
	value, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: requestcontext.Now(ctx),
		DoctorID:   doctorID,
		RequestID:  requestID,
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	headers := map[string]string{"event_type": eventType}
	if reqID := requestcontext.RequestID(ctx); reqID != "" {
		headers["request_id"] = reqID
	}

	// The workflow has already committed; a cancelled caller must not drop the event.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.producer.Produce(pubCtx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(doctorID),
		Value:   value,
		Headers: headers,
	})
}
