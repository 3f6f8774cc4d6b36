package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/lessen/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor and reports finished spans to a
// logger at debug level.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration and attributes.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	var msg strings.Builder
	msg.WriteString("span ")
	msg.WriteString(s.Name())
	msg.WriteString(" took ")
	msg.WriteString(s.EndTime().Sub(s.StartTime()).String())
	for _, attr := range s.Attributes() {
		msg.WriteString(" ")
		msg.WriteString(string(attr.Key))
		msg.WriteString("=")
		msg.WriteString(attr.Value.Emit())
	}
	if s.Status().Code == codes.Error {
		msg.WriteString(" error=")
		msg.WriteString(s.Status().Description)
	}

	b.logger.Debug(msg.String())
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// NewProvider returns a TracerProvider that reports spans through a Bridge.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(logger)))
}
