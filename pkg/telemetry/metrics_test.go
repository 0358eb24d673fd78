package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestBookingMetrics_RecordCreate(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewBookingMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCreate(ctx, OutcomeCreated, 2, 3*time.Millisecond)
	m.RecordCreate(ctx, OutcomeCreated, 1, time.Millisecond)
	m.RecordCreate(ctx, OutcomeConflict, 3, time.Millisecond)
	m.RecordCancel(ctx, false)

	got := collect(t, reader)

	attempts, ok := got["booking.attempts"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byOutcome := map[string]int64{}
	for _, dp := range attempts.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("outcome"))
		byOutcome[v.AsString()] = dp.Value
	}
	assert.Equal(t, int64(2), byOutcome[OutcomeCreated])
	assert.Equal(t, int64(1), byOutcome[OutcomeConflict])

	seats, ok := got["booking.seats"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, seats.DataPoints, 1)
	assert.Equal(t, int64(3), seats.DataPoints[0].Value)

	cancelled, ok := got["booking.cancelled"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, cancelled.DataPoints, 1)
	assert.Equal(t, int64(1), cancelled.DataPoints[0].Value)

	_, ok = got["booking.create.duration"].Data.(metricdata.Histogram[float64])
	assert.True(t, ok)
}

func TestBookingMetrics_NilIsNoop(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.RecordCreate(context.Background(), OutcomeCreated, 1, time.Millisecond)
		m.RecordCancel(context.Background(), true)
	})
}

func TestInit_WithoutEndpoint(t *testing.T) {
	tel, err := Init(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)
	assert.NotNil(t, tel.Meter())
	assert.NoError(t, tel.Shutdown(context.Background()))
}
