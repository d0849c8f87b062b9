package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterName scopes the walk instruments.
const meterName = "github.com/Sumatoshi-tech/gitreview"

// NewMeterHandler creates a Prometheus-backed OTel meter and the
// [http.Handler] serving its /metrics scrape endpoint. Each call uses an
// independent Prometheus registry to avoid collector conflicts.
func NewMeterHandler() (*WalkMetrics, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	metrics, err := NewWalkMetrics(provider.Meter(meterName))
	if err != nil {
		return nil, nil, err
	}

	return metrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
