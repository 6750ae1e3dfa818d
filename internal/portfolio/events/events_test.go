package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoulgheleb/crisiszone/internal/platform/kafka/producer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/metrics"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
	"github.com/batoulgheleb/crisiszone/pkg/testutil"
)

type recordingProducer struct {
	mu       sync.Mutex
	messages []*producer.Message
	ctxErr   error
	err      error
}

func (r *recordingProducer) Produce(ctx context.Context, msg *producer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxErr = ctx.Err()
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, msg)
	return nil
}

func TestPublishesEnvelopeKeyedByDoctor(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewPublisher(prod, WithTopic("portfolio-test"))
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), testutil.FixedNow), "http-req-1")

	pub.RequestSubmitted(ctx, testutil.NewRequestBuilder().Build())

	require.Len(t, prod.messages, 1)
	msg := prod.messages[0]
	assert.Equal(t, "portfolio-test", msg.Topic)
	assert.Equal(t, []byte(testutil.TestIDs.Doctor1), msg.Key)
	assert.Equal(t, TypeRequestSubmitted, msg.Headers["event_type"])
	assert.Equal(t, "http-req-1", msg.Headers["request_id"])

	var env struct {
		ID         string          `json:"id"`
		Type       string          `json:"type"`
		OccurredAt time.Time       `json:"occurredAt"`
		DoctorID   string          `json:"doctorId"`
		RequestID  string          `json:"requestId"`
		Data       json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, TypeRequestSubmitted, env.Type)
	assert.True(t, env.OccurredAt.Equal(testutil.FixedNow))
	assert.Equal(t, string(testutil.TestIDs.Request1), env.RequestID)
	assert.Contains(t, string(env.Data), `"status":"Pending"`)
}

func TestEveryEventTypeUsesItsName(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewPublisher(prod)
	ctx := context.Background()
	req := testutil.NewRequestBuilder().Build()

	pub.RequestSubmitted(ctx, req)
	pub.VerificationRecorded(ctx, testutil.NewVerificationBuilder().Build())
	pub.RequestExpired(ctx, req)
	pub.RequestCancelled(ctx, req)

	require.Len(t, prod.messages, 4)
	var types []string
	for _, m := range prod.messages {
		assert.Equal(t, DefaultTopic, m.Topic)
		types = append(types, m.Headers["event_type"])
	}
	assert.Equal(t, []string{TypeRequestSubmitted, TypeVerificationRecorded, TypeRequestExpired, TypeRequestCancelled}, types)
}

func TestPublishSurvivesCancelledCaller(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewPublisher(prod)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pub.RequestCancelled(ctx, testutil.NewRequestBuilder().Build())

	require.Len(t, prod.messages, 1)
	assert.NoError(t, prod.ctxErr)
}

func TestFailuresAreCountedNotReturned(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	pub := NewPublisher(&recordingProducer{err: errors.New("broker down")}, WithMetrics(m))

	assert.NotPanics(t, func() {
		pub.VerificationRecorded(context.Background(), testutil.NewVerificationBuilder().Build())
	})
	assert.Equal(t, 1.0, promtest.ToFloat64(m.EventsPublished.WithLabelValues(TypeVerificationRecorded, "error")))
}
