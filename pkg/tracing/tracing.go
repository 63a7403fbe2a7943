// Package tracing records the duration of named operations.
package tracing

// Tracer starts [Span]s.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a single timed operation. Baggage items are reported alongside the
// duration when the span finishes.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}
