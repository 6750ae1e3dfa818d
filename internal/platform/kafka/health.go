package kafka

import (
	"context"
	"fmt"
)

// Pinger is satisfied by producer.Producer.
type Pinger interface {
	Healthy(ctx context.Context) bool
}

// HealthChecker reports broker reachability for the readiness probe.
type HealthChecker struct {
	brokers string
	pinger  Pinger
}

// NewHealthChecker creates a new Kafka health checker.
func NewHealthChecker(brokers string, pinger Pinger) *HealthChecker {
	return &HealthChecker{
		brokers: brokers,
		pinger:  pinger,
	}
}

// Check returns nil if at least one broker answers a ping.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.brokers == "" || h.pinger == nil {
		return fmt.Errorf("kafka brokers not configured")
	}
	if !h.pinger.Healthy(ctx) {
		return fmt.Errorf("no kafka brokers reachable at %s", h.brokers)
	}
	return nil
}

// Name returns the check name for health reporting.
func (h *HealthChecker) Name() string {
	return "kafka"
}
