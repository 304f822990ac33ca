package messaging

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestHeaderCarrier(t *testing.T) {
	t.Run("sets, overwrites and reads headers", func(t *testing.T) {
		msg := kafka.Message{Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte("OrderPlaced")}}}
		c := headerCarrier{msg: &msg}

		c.Set("traceparent", "a")
		c.Set("traceparent", "b")

		if got := c.Get("traceparent"); got != "b" {
			t.Errorf("expected b, got %q", got)
		}
		if got := c.Get(HeaderEventType); got != "OrderPlaced" {
			t.Errorf("expected OrderPlaced, got %q", got)
		}
		if got := c.Get("missing"); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
		if len(msg.Headers) != 2 {
			t.Errorf("expected 2 headers, got %d", len(msg.Headers))
		}
		if keys := c.Keys(); len(keys) != 2 || keys[1] != "traceparent" {
			t.Errorf("unexpected keys: %v", keys)
		}
	})

	t.Run("round trips trace context", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		var msg kafka.Message
		prop := propagation.TraceContext{}
		prop.Inject(ctx, headerCarrier{msg: &msg})

		extracted := trace.SpanContextFromContext(prop.Extract(context.Background(), headerCarrier{msg: &msg}))
		if extracted.TraceID() != traceID {
			t.Errorf("expected trace id %s, got %s", traceID, extracted.TraceID())
		}
		if extracted.SpanID() != spanID {
			t.Errorf("expected span id %s, got %s", spanID, extracted.SpanID())
		}
	})
}
