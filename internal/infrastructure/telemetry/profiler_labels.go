package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelOperation = "operation"
	ProfilingLabelStrategy  = "strategy"
)

// MaxLabelValueLength bounds label values to keep profile series small
const MaxLabelValueLength = 128

// highCardinalityLabels are dropped; every payment or request would start
// its own profile series.
var highCardinalityLabels = map[string]bool{
	"request_id": true,
	"trace_id":   true,
	"span_id":    true,
	"tenant_id":  true,
	"payment_id": true,
	"lease_id":   true,
	"period_id":  true,
}

// WithProfilingLabels runs fn with pprof labels attached, so CPU samples
// taken inside it can be filtered in Pyroscope. Labels work without a
// running profiler; they are then only visible to local pprof.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// OperationLabels labels a named ledger operation
func OperationLabels(operation string, extra map[string]string) map[string]string {
	labels := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		labels[k] = v
	}
	labels[ProfilingLabelOperation] = operation
	return labels
}

// HTTPRequestLabels labels a request by its route pattern, never the raw path
func HTTPRequestLabels(route, method string) map[string]string {
	labels := make(map[string]string, 2)
	if route != "" {
		labels[ProfilingLabelRoute] = route
	}
	if method != "" {
		labels[ProfilingLabelMethod] = method
	}
	return labels
}

// sanitizeLabels returns sorted key/value pairs, skipping empty and
// high-cardinality entries and truncating long values.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if value == "" {
			continue
		}
		clean := sanitizeLabelKey(key)
		if clean == "" || highCardinalityLabels[clean] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, clean, value)
	}
	return pairs
}

// sanitizeLabelKey lowercases key and keeps only [a-z0-9_]
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
