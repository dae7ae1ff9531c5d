package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// BuildMetrics records batch build outcomes.
type BuildMetrics struct {
	duration metric.Float64Histogram
	records  metric.Int64Counter
}

var (
	buildMetricsOnce sync.Once
	buildMetrics     *BuildMetrics
)

// Builds returns the process-wide build metrics, creating them on first use.
// Instruments come from the global meter provider, a noop until New installs one.
func Builds() *BuildMetrics {
	buildMetricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		m := &BuildMetrics{}

		var err error
		m.duration, err = meter.Float64Histogram(
			"portfolio.build.duration",
			metric.WithDescription("Batch build duration in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			otel.Handle(err)
		}

		m.records, err = meter.Int64Counter(
			"portfolio.build.records",
			metric.WithDescription("Records processed by batch builds, by outcome"),
		)
		if err != nil {
			otel.Handle(err)
		}

		buildMetrics = m
	})

	return buildMetrics
}

// Record reports one finished batch.
func (m *BuildMetrics) Record(ctx context.Context, job, kind string, written, failed int, elapsed time.Duration) {
	if m == nil {
		return
	}

	base := []attribute.KeyValue{
		attribute.String("build.job", job),
		attribute.String("build.kind", kind),
	}

	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(base...))
	}

	if m.records != nil {
		m.records.Add(ctx, int64(written), metric.WithAttributes(append(base, attribute.String("outcome", "written"))...))
		m.records.Add(ctx, int64(failed), metric.WithAttributes(append(base, attribute.String("outcome", "failed"))...))
	}
}

// StartSpan starts a span on the package tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
