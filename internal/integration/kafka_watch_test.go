//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/nwswx"
	kafkaadapter "github.com/couchcryptid/nwswx/internal/adapter/kafka"
	"github.com/couchcryptid/nwswx/internal/config"
	"github.com/couchcryptid/nwswx/internal/observability"
	"github.com/couchcryptid/nwswx/internal/watch"
)

const testAlertTopic = "test-nws-alerts"

// publishedAlert holds a deserialized message read from the alert topic.
type publishedAlert struct {
	Alert   nwswx.Alert
	Key     string
	Headers map[string]string
}

// readAlert reads a single message from the consumer and deserializes it.
func readAlert(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedAlert {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from alert topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var alert nwswx.Alert
	require.NoError(t, json.Unmarshal(msg.Value, &alert), "unmarshal alert message")

	return publishedAlert{
		Alert:   alert,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func newConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAlertTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestPublisherRoundTrip verifies the adapter layer: kafka.Publisher correctly
// round-trips alert envelopes through Kafka with key and headers intact.
func TestPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testAlertTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	observed := time.Now().UTC().Truncate(time.Second)
	envs := []watch.Envelope{
		{
			Alert:      nwswx.Alert{ID: "urn:oid:2.49.0.1.840.0.abc123", Event: "Tornado Warning", Severity: "Extreme", AreaDesc: "Douglas, KS"},
			ObservedAt: observed,
		},
		{
			Alert:      nwswx.Alert{ID: "urn:oid:2.49.0.1.840.0.def456", Event: "Flood Warning", Severity: "Moderate", AreaDesc: "Johnson, KS"},
			ObservedAt: observed,
		},
	}
	require.NoError(t, publisher.PublishBatch(ctx, envs))

	consumer := newConsumer(t, broker)

	first := readAlert(ctx, t, consumer)
	assert.Equal(t, "urn:oid:2.49.0.1.840.0.abc123", first.Key)
	assert.Equal(t, "Tornado Warning", first.Headers["event"])
	assert.Equal(t, "Extreme", first.Headers["severity"])
	assert.Equal(t, observed.Format(time.RFC3339), first.Headers["observed_at"])
	assert.Equal(t, "Douglas, KS", first.Alert.AreaDesc)

	second := readAlert(ctx, t, consumer)
	assert.Equal(t, "urn:oid:2.49.0.1.840.0.def456", second.Key)
	assert.Equal(t, "Flood Warning", second.Alert.Event)
}

// TestWatcherEndToEnd wires the full watcher (feed fetch → dedup → Kafka
// publish) against a stub alert feed and real Kafka, and verifies that each
// alert is published exactly once even as the feed repeats and grows.
func TestWatcherEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	// Stub feed: two alerts at first, a third appears from the third poll on.
	var polls atomic.Int64
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active", r.URL.Path)

		graph := `[
			{"id": "alert-1", "event": "Tornado Warning", "severity": "Extreme"},
			{"id": "alert-2", "event": "Flood Warning", "severity": "Moderate"}
		]`
		if polls.Add(1) >= 3 {
			graph = `[
				{"id": "alert-1", "event": "Tornado Warning", "severity": "Extreme"},
				{"id": "alert-2", "event": "Flood Warning", "severity": "Moderate"},
				{"id": "alert-3", "event": "Severe Thunderstorm Warning", "severity": "Severe"}
			]`
		}
		w.Header().Set("Content-Type", "application/ld+json")
		_, _ = w.Write([]byte(`{"@graph":` + graph + `}`))
	}))
	defer feed.Close()

	client, err := nwswx.New("integration@example.com", nwswx.WithBaseURL(feed.URL))
	require.NoError(t, err)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testAlertTopic,
	}

	fetcher := watch.NewAlertFetcher(client, nwswx.AlertQuery{})
	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	watcher, err := watch.New(fetcher, publisher, discardLogger(), observability.NewMetricsForTesting(), time.Second, 64)
	require.NoError(t, err)

	watchCtx, watchCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(watchCtx) }()

	consumer := newConsumer(t, broker)

	got := map[string]publishedAlert{}
	for len(got) < 3 {
		pa := readAlert(ctx, t, consumer)
		got[pa.Key] = pa
	}

	assert.NoError(t, watcher.CheckReadiness(ctx))

	watchCancel()
	require.NoError(t, <-errCh)

	require.Contains(t, got, "alert-1")
	require.Contains(t, got, "alert-2")
	require.Contains(t, got, "alert-3")
	assert.Equal(t, "Extreme", got["alert-1"].Headers["severity"])
	assert.Equal(t, "Severe Thunderstorm Warning", got["alert-3"].Alert.Event)

	// The feed repeated alert-1 and alert-2 on every poll; none of those
	// repeats may have been republished.
	readCtx, readCancel := context.WithTimeout(ctx, 3*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no duplicate publishes on the topic")
}
