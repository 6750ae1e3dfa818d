// Package tracer is a small tracing facade over OpenTelemetry so workflow code
// can open spans without importing otel everywhere.
//
// Implementations:
//   - NoopTracer: tests and deployments without a collector
//   - OTelTracer: OpenTelemetry adapter using the global provider
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil. Call exactly once.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanSubmitRequest      = "portfolio.request.submit"
	SpanSubmitVerification = "portfolio.verification.submit"
	SpanCancelRequest      = "portfolio.request.cancel"
	SpanExpireRequests     = "portfolio.request.expire"
	SpanDoctorProgress     = "portfolio.progress.doctor"
	SpanDoctorDashboard    = "portfolio.dashboard.doctor"
	SpanSupervisorDash     = "portfolio.dashboard.supervisor"
	SpanPublishEvent       = "portfolio.event.publish"
)

// Attribute keys.
const (
	AttrDoctorID     = "doctor.id"
	AttrSupervisorID = "supervisor.id"
	AttrProcedureID  = "procedure.id"
	AttrRequestID    = "request.id"
	AttrSkillLevel   = "skill_level"
	AttrCacheHit     = "cache.hit"
	AttrExpired      = "requests.expired"
	AttrEventType    = "event.type"
	AttrErrorCode    = "error.code"
)

// Event names.
const (
	EventCacheFallback = "cache.fallback"
	EventRejected      = "portfolio.rejected"
)
