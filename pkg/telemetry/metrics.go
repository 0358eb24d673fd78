package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Booking outcomes used as the "outcome" attribute.
const (
	OutcomeCreated     = "created"
	OutcomeConflict    = "conflict"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

type BookingMetrics struct {
	attempts  metric.Int64Counter
	cancelled metric.Int64Counter
	seats     metric.Int64Counter
	latency   metric.Float64Histogram
}

func NewBookingMetrics(meter metric.Meter) (*BookingMetrics, error) {
	attempts, err := meter.Int64Counter("booking.attempts",
		metric.WithDescription("Booking requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cancelled, err := meter.Int64Counter("booking.cancelled",
		metric.WithDescription("Bookings cancelled"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return nil, err
	}

	seats, err := meter.Int64Counter("booking.seats",
		metric.WithDescription("Seats claimed by committed bookings"),
		metric.WithUnit("{seat}"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("booking.create.duration",
		metric.WithDescription("Time spent creating a booking"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &BookingMetrics{
		attempts:  attempts,
		cancelled: cancelled,
		seats:     seats,
		latency:   latency,
	}, nil
}

// RecordCreate records one booking attempt. seatCount only counts for
// OutcomeCreated.
func (m *BookingMetrics) RecordCreate(ctx context.Context, outcome string, seatCount int, took time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.attempts.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(took.Microseconds())/1000, attrs)
	if outcome == OutcomeCreated {
		m.seats.Add(ctx, int64(seatCount))
	}
}

func (m *BookingMetrics) RecordCancel(ctx context.Context, byAdmin bool) {
	if m == nil {
		return
	}
	m.cancelled.Add(ctx, 1, metric.WithAttributes(attribute.Bool("by_admin", byAdmin)))
}
